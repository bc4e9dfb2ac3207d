package handler

import (
	"database/sql"
	"log"
	"net/http"
	"time"
)

// HealthHandler provides the health check endpoint.
type HealthHandler struct {
	DB     *sql.DB
	Logger *log.Logger

	ResponseHelper *ResponseHelper
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, logger *log.Logger) *HealthHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &HealthHandler{
		DB:             db,
		Logger:         logger,
		ResponseHelper: NewResponseHelper(logger),
	}
}

// HealthCheckHandler handles GET /api/health. A failing database ping turns
// the report degraded but still answers 200; load balancers that care should
// look at the database field.
func (h *HealthHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	database := "ok"
	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			h.Logger.Printf("Health check database ping failed: %v", err)
			database = "unreachable"
		}
	}

	h.ResponseHelper.SendData(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  database,
		"service":   "hr-administration-api",
		"timestamp": time.Now().UTC(),
	})
}
