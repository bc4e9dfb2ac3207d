package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hr-administration-api/internal/config"
	"hr-administration-api/internal/database"
	"hr-administration-api/internal/handler"
	"hr-administration-api/internal/repository"
	"hr-administration-api/internal/router"
	"hr-administration-api/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		log.Fatalf("Failed to create uploads directory: %v", err)
	}

	logger := log.Default()

	// Repositories
	assetRepo := repository.NewAssetRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// Services
	assetSvc := service.NewAssetService(assetRepo, activityRepo, logger)
	vendorSvc := service.NewVendorService(vendorRepo, logger)
	ticketSvc := service.NewTicketService(ticketRepo, activityRepo, logger)
	activitySvc := service.NewActivityService(activityRepo, logger)
	lookupSvc := service.NewLookupService(lookupRepo, logger)
	profileSvc := service.NewProfileService(profileRepo, logger)

	// Handlers
	handlers := router.Handlers{
		Assets:   handler.NewAssetHandler(assetSvc, logger),
		Vendors:  handler.NewVendorHandler(vendorSvc, logger),
		Tickets:  handler.NewTicketHandler(ticketSvc, cfg.Uploads.PublicBaseURL, logger),
		Activity: handler.NewActivityHandler(activitySvc, logger),
		Lookup:   handler.NewLookupHandler(lookupSvc, logger),
		Profile:  handler.NewProfileHandler(profileSvc, cfg.Uploads, logger),
		Health:   handler.NewHealthHandler(db, logger),
	}

	r := router.NewRouter(handlers, cfg, logger)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %d", cfg.Port)
		log.Printf("Security: Rate limit=%d RPS, Burst=%d, CORS=%v, Timeout=%v",
			cfg.Security.RateLimitRPS,
			cfg.Security.RateLimitBurst,
			cfg.Security.EnableCORS,
			cfg.Security.RequestTimeout,
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-done
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Security.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	} else {
		log.Println("Server exited gracefully")
	}
}
