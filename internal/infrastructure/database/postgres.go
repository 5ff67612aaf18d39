package database

import (
	"fmt"
	"log"

	"github.com/pascallapointe/HairBill-sub000/internal/config"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Client{},
		&entity.ShopSettings{},
		&entity.Invoice{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// SeedDefaultData seeds the database with default data (shop settings, admin user)
func SeedDefaultData(db *gorm.DB, cfg *config.Config) error {
	log.Println("Seeding default data...")

	// Default shop settings: taxes configured for a Canadian shop but
	// disabled until the owner enables them.
	var settings entity.ShopSettings
	if err := db.First(&settings).Error; err != nil {
		settings = entity.ShopSettings{
			Shop: entity.ShopIdentity{
				Name: cfg.App.Name,
			},
			Regime: entity.TaxRegime{
				Enabled:          false,
				UseSecondTax:     false,
				Compounded:       false,
				PriceIncludesTax: false,
				TaxARate:         decimal.RequireFromString("0.05"),
				TaxBRate:         decimal.RequireFromString("0.09975"),
				TaxAName:         "GST",
				TaxBName:         "QST",
			},
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create default settings: %v", err)
		}
	}

	// Default admin user
	var admin entity.User
	if err := db.Where("email = ?", cfg.Admin.Email).First(&admin).Error; err != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin = entity.User{
			Name:     "Administrator",
			Email:    cfg.Admin.Email,
			Password: string(hashed),
			Role:     "admin",
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("Warning: failed to create admin user: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
