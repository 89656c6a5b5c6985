package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/eezystore/eezystore-backend/config"
	"github.com/eezystore/eezystore-backend/internal/app/controller"
	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/eezystore/eezystore-backend/internal/app/service"
	"github.com/eezystore/eezystore-backend/internal/db"
	"github.com/eezystore/eezystore-backend/internal/middleware"
	"github.com/eezystore/eezystore-backend/internal/router"
	"github.com/eezystore/eezystore-backend/internal/storage"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"github.com/eezystore/eezystore-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting EezyStore Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the bootstrap admin account
	if err := db.SeedAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Warn("Failed to seed admin account", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis (refresh token blacklist)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()
	blacklist := redis.NewTokenBlacklist(redis.GetClient())

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	ratingRepo := repository.NewRatingRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		blacklist,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	customerService := service.NewCustomerService(userRepo)
	addressService := service.NewAddressService(addressRepo)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(db.GetDB(), orderRepo, cartRepo, addressRepo)
	ratingService := service.NewRatingService(ratingRepo, orderRepo)
	exportService := service.NewExportService(orderRepo)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.RefreshTokenExpiry)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService, addressService)
	orderController := controller.NewOrderController(orderService)
	addressController := controller.NewAddressController(addressService)
	ratingController := controller.NewRatingController(ratingService)
	adminController := controller.NewAdminController(customerService, productService, orderService, exportService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		orderController,
		addressController,
		ratingController,
		adminController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
