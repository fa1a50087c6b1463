package main

import (
	"fmt"
	"os"

	"merchantdesk/internal/handler"
	"merchantdesk/internal/middleware"
	"merchantdesk/internal/model"
	"merchantdesk/pkg/config"
	"merchantdesk/pkg/database"
	"merchantdesk/pkg/logger"
	"merchantdesk/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found or error loading: %v\n", err)
	}

	// Load configuration
	conf, err := config.Load("merchantdesk")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	// Initialize database connection
	_, err = database.InitDB(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database")
	}

	// Run migrations for the merchant model
	if err := database.MigrateModels(&model.Merchant{}); err != nil {
		log.Fatal("Failed to migrate database models")
	}

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true

	// Apply middleware
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Service and operational endpoints
	e.GET("/", handler.Info)
	e.GET("/healthz", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	// Merchant routes
	e.GET("/merchants", handler.ListMerchants)
	e.GET("/merchants/:id", handler.GetMerchant)
	e.POST("/merchants", handler.CreateMerchant)
	e.PUT("/merchants/:id", handler.UpdateMerchant)
	e.DELETE("/merchants/:id", handler.DeleteMerchant)

	// Start server
	log.Info("Starting merchantdesk API on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}
