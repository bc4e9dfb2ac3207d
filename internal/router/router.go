package router

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"hr-administration-api/internal/config"
	"hr-administration-api/internal/handler"
	"hr-administration-api/internal/middleware"
)

// Handlers groups the HTTP handlers the router wires up.
type Handlers struct {
	Assets   *handler.AssetHandler
	Vendors  *handler.VendorHandler
	Tickets  *handler.TicketHandler
	Activity *handler.ActivityHandler
	Lookup   *handler.LookupHandler
	Profile  *handler.ProfileHandler
	Health   *handler.HealthHandler
}

// NewRouter creates the router and sets up all routes with middleware.
func NewRouter(h Handlers, cfg *config.Config, logger *log.Logger) *mux.Router {
	r := mux.NewRouter()

	securityMW := middleware.NewSecurityMiddleware(&cfg.Security)
	loggingMW := middleware.NewLoggingMiddleware(logger)

	r.Use(securityMW.SecurityHeaders)
	r.Use(securityMW.CORS)
	r.Use(securityMW.RateLimit)
	r.Use(securityMW.RequestTimeout)
	r.Use(loggingMW.LogRequests)

	api := r.PathPrefix("/api").Subrouter()

	// Assets. The next-id route must be registered before the {assetId} route
	// so "next-id" is not captured as a business key.
	api.HandleFunc("/assets/next-id", h.Assets.NextAssetIDHandler).Methods("GET")
	api.HandleFunc("/assets", h.Assets.CreateAssetHandler).Methods("POST")
	api.HandleFunc("/assets", h.Assets.GetAssetsHandler).Methods("GET")
	api.HandleFunc("/assets/{assetId}", h.Assets.GetAssetHandler).Methods("GET")
	api.HandleFunc("/assets/{assetId}", h.Assets.UpdateAssetHandler).Methods("PUT")
	api.HandleFunc("/assets/{assetId}", h.Assets.DeleteAssetHandler).Methods("DELETE")

	// Vendors
	api.HandleFunc("/vendors", h.Vendors.CreateVendorHandler).Methods("POST")
	api.HandleFunc("/vendors", h.Vendors.GetVendorsHandler).Methods("GET")
	api.HandleFunc("/vendors/{id}", h.Vendors.GetVendorHandler).Methods("GET")
	api.HandleFunc("/vendors/{id}", h.Vendors.UpdateVendorHandler).Methods("PUT")
	api.HandleFunc("/vendors/{id}", h.Vendors.DeleteVendorHandler).Methods("DELETE")

	// Allocation form lookups
	api.HandleFunc("/departments", h.Lookup.GetDepartmentsHandler).Methods("GET")
	api.HandleFunc("/employees/by-group", h.Lookup.GetEmployeesByGroupHandler).Methods("GET")

	// HR ticket view
	api.HandleFunc("/hr/tickets", h.Tickets.GetTicketsHandler).Methods("GET")
	api.HandleFunc("/hr/tickets/{ticketId}", h.Tickets.GetTicketHandler).Methods("GET")
	api.HandleFunc("/hr/tickets/{ticketId}", h.Tickets.UpdateTicketHandler).Methods("PUT")
	api.HandleFunc("/hr/ticket-stats", h.Tickets.GetTicketStatsHandler).Methods("GET")

	// Activity log viewers
	api.HandleFunc("/hr/activity-logs", h.Activity.GetActivityLogsHandler).Methods("GET")

	// Employee profile
	api.HandleFunc("/user/profile", h.Profile.GetProfileHandler).Methods("GET")
	api.HandleFunc("/profile", h.Profile.SaveProfileHandler).Methods("POST")

	// Health check
	api.HandleFunc("/health", h.Health.HealthCheckHandler).Methods("GET")

	// Uploaded evidence and documents
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir))))

	return r
}
