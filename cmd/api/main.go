package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/pascallapointe/HairBill-sub000/internal/application/service"
	"github.com/pascallapointe/HairBill-sub000/internal/config"
	"github.com/pascallapointe/HairBill-sub000/internal/infrastructure/database"
	"github.com/pascallapointe/HairBill-sub000/internal/infrastructure/repository"
	"github.com/pascallapointe/HairBill-sub000/internal/presentation/http/handler"
	"github.com/pascallapointe/HairBill-sub000/internal/presentation/http/routes"
	"github.com/pascallapointe/HairBill-sub000/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	billingService := service.NewBillingService()
	invoiceService := service.NewInvoiceService(invoiceRepo, settingsRepo, billingService)
	reportService := service.NewReportService(invoiceRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	clientService := service.NewClientService(clientRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Billing:  handler.NewBillingHandler(billingService, settingsService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Report:   handler.NewReportHandler(reportService),
		Settings: handler.NewSettingsHandler(settingsService),
		Client:   handler.NewClientHandler(clientService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
