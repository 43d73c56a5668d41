package main

import (
	"fmt"
	"log"
	"net/http"

	"trip-planner/internal/config"
	"trip-planner/internal/database"
	"trip-planner/internal/handlers"
	"trip-planner/internal/middleware"
	"trip-planner/internal/repositories"
	"trip-planner/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	dbConfig := database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize repositories
	eventRepo := repositories.NewEventRepository(db.DB)
	participantRepo := repositories.NewParticipantRepository(db.DB)
	transportRepo := repositories.NewTransportRepository(db.DB)
	inventoryRepo := repositories.NewInventoryRepository(db.DB)
	wantedRepo := repositories.NewWantedRepository(db.DB)
	auditRepo := repositories.NewAuditLogRepository(db.DB)

	// Initialize services
	auditService := services.NewAuditService(auditRepo)
	eventService := services.NewEventService(eventRepo, auditService)
	accessService := services.NewAccessService(eventRepo)
	participantService := services.NewParticipantService(participantRepo, auditService)
	transportService := services.NewTransportService(transportRepo, auditService)
	inventoryService := services.NewInventoryService(inventoryRepo, auditService)
	wantedService := services.NewWantedService(wantedRepo, auditService)

	// PIN verification rate limiter, keyed by client IP
	rateLimiter := middleware.NewPinRateLimiter(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(eventService, accessService, rateLimiter)
	participantHandler := handlers.NewParticipantHandler(participantService, accessService)
	transportHandler := handlers.NewTransportHandler(transportService, accessService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, accessService)
	wantedHandler := handlers.NewWantedHandler(wantedService, accessService)
	auditHandler := handlers.NewAuditHandler(auditService, accessService)

	// Initialize router
	r := chi.NewRouter()

	// Basic middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))

	r.Route("/api/events", func(r chi.Router) {
		r.Post("/", eventHandler.Create)
		r.Post("/join", eventHandler.Join)
		r.Post("/verify-pin", eventHandler.VerifyPin)
		r.Post("/reset-rate-limit", eventHandler.ResetRateLimit)

		r.Route("/{token}", func(r chi.Router) {
			r.Get("/", eventHandler.Get)
			r.Put("/", eventHandler.Update)

			r.Get("/participants", participantHandler.List)
			r.Post("/participants", participantHandler.Create)
			r.Put("/participants/{id}", participantHandler.Update)
			r.Delete("/participants/{id}", participantHandler.Delete)

			r.Get("/transport", transportHandler.List)
			r.Post("/transport", transportHandler.Create)
			r.Post("/transport/assign", transportHandler.Assign)
			r.Delete("/transport/assign", transportHandler.Unassign)
			r.Put("/transport/{id}", transportHandler.Update)
			r.Delete("/transport/{id}", transportHandler.Delete)

			r.Get("/inventory", inventoryHandler.List)
			r.Post("/inventory", inventoryHandler.Create)
			r.Put("/inventory/{id}", inventoryHandler.Update)
			r.Delete("/inventory/{id}", inventoryHandler.Delete)

			r.Get("/wanted", wantedHandler.List)
			r.Post("/wanted", wantedHandler.Create)
			r.Put("/wanted/{id}", wantedHandler.Update)
			r.Delete("/wanted/{id}", wantedHandler.Delete)

			r.Get("/audit-logs", auditHandler.List)
		})
	})

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on http://%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
