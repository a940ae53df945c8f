package app

import (
	"errors"
	"fmt"
	"time"

	"launchboard_backend/database"
	"launchboard_backend/internal/auth"
	"launchboard_backend/internal/config"
	"launchboard_backend/internal/email"
	"launchboard_backend/internal/exchange"
	"launchboard_backend/internal/gateways"
	"launchboard_backend/internal/handlers"
	"launchboard_backend/internal/logger"
	"launchboard_backend/internal/middleware"
	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/internal/routes"
	"launchboard_backend/internal/services"
	"launchboard_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.InitSession(cfg.Session.Secret, cfg.Session.TTLMinutes)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	cashfree := gateways.NewCashfreeGateway(
		cfg.Cashfree.AppID,
		cfg.Cashfree.SecretKey,
		cfg.Cashfree.WebhookSecret,
		cfg.Cashfree.BaseURL,
	)
	paypal := gateways.NewPayPalGateway(
		cfg.PayPal.ClientID,
		cfg.PayPal.Secret,
		cfg.PayPal.BaseURL,
	)

	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		emailProvider = email.NewSMTPProvider(&email.SMTPConfig{
			Host:       cfg.Email.SMTPHost,
			Port:       cfg.Email.SMTPPort,
			Username:   cfg.Email.SMTPUsername,
			Password:   cfg.Email.SMTPPassword,
			FromEmail:  cfg.Email.FromEmail,
			FromName:   cfg.Email.FromName,
			AdminEmail: cfg.Email.AdminEmail,
		})
	} else {
		logger.Warn("SMTP is not configured, admin alerts are disabled")
		emailProvider = email.NopProvider{}
	}

	rates := exchange.NewCache(
		exchange.NewHTTPRateSource(cfg.Exchange.APIBaseURL),
		time.Duration(cfg.Exchange.TTLHours)*time.Hour,
	)

	return services.NewServiceContainer(services.Dependencies{
		Gateways: gateways.NewRegistry(cashfree, paypal),
		Cashfree: cashfree,
		Rates:    rates,
		Emails:   emailProvider,
	})
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	if err := auth.ValidatePassword(adminPassword); err != nil {
		return fmt.Errorf("first admin password rejected: %w", err)
	}

	userRepo := repositories.NewUserRepository()
	if _, err := userRepo.FindByEmail(db, adminEmail); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:               "Platform Admin",
		Email:              &adminEmail,
		Username:           auth.GenerateUsername("admin"),
		Role:               "admin",
		StakeholderType:    models.StakeholderEcosystem,
		SubscriptionStatus: models.SubscriptionActive,
		ReferralCode:       auth.GenerateReferralCode("admin"),
		PasswordHash:       hash,
		IsAdmin:            true,
	}
	if err := userRepo.Create(db, admin); err != nil {
		return err
	}

	logger.Info("Seeded first admin user", "email", adminEmail)
	return nil
}
