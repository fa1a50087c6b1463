package handler

import (
	"net/http"
	"time"

	"merchantdesk/pkg/database"
	"merchantdesk/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Info returns the service banner served at the root path
func Info(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"info": "merchantdesk merchant API",
	})
}

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	log := logger.FromEcho(c)

	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	// Check database connection if requested
	if c.QueryParam("check") == "db" {
		sqlDB, err := database.GetDB().DB()
		if err != nil {
			log.Error("Database connection error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			return c.JSON(http.StatusInternalServerError, response)
		}

		if err := sqlDB.Ping(); err != nil {
			log.Error("Database ping error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			return c.JSON(http.StatusInternalServerError, response)
		}

		response["db_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}
