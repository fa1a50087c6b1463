package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"merchantdesk/internal/model"
	"merchantdesk/pkg/database"
	"merchantdesk/pkg/logger"
	"merchantdesk/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MerchantRequest defines the structure for merchant creation/update requests
type MerchantRequest struct {
	MerchantName string `json:"merchant_name"`
	Country      string `json:"country"`
}

// validate trims both fields in place and returns a user-facing message when
// the request is not acceptable.
func (r *MerchantRequest) validate() string {
	r.MerchantName = strings.TrimSpace(r.MerchantName)
	r.Country = strings.TrimSpace(r.Country)

	if r.MerchantName == "" || r.Country == "" {
		return "merchant_name and country are required"
	}
	if len([]rune(r.MerchantName)) < 2 {
		return "merchant_name must be at least 2 characters"
	}
	return ""
}

// ListMerchants retrieves all merchants ordered by ID ascending
func ListMerchants(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.ListMerchantsCounter.Inc()

	var merchants []model.Merchant
	if result := database.GetDB().Order("id ASC").Find(&merchants); result.Error != nil {
		log.Error("Failed to list merchants", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": result.Error.Error()})
	}

	log.Info("Merchants retrieved", zap.Int("count", len(merchants)))
	return c.JSON(http.StatusOK, merchants)
}

// GetMerchant retrieves a single merchant by ID. A missing row is not an
// error: the response is 200 with a null body, matching what list consumers
// expect from this API.
func GetMerchant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.GetMerchantCounter.Inc()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid merchant ID", zap.String("id", c.Param("id")), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid merchant ID"})
	}

	var merchant model.Merchant
	result := database.GetDB().First(&merchant, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Info("Merchant not found", zap.Uint64("id", id))
			return c.JSON(http.StatusOK, nil)
		}
		log.Error("Failed to retrieve merchant", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": result.Error.Error()})
	}

	return c.JSON(http.StatusOK, merchant)
}

// CreateMerchant handles merchant creation
func CreateMerchant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.CreateMerchantCounter.Inc()

	var req MerchantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse merchant creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if msg := req.validate(); msg != "" {
		log.Error("Invalid merchant data",
			zap.String("merchant_name", req.MerchantName),
			zap.String("country", req.Country))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	merchant := model.Merchant{
		MerchantName: req.MerchantName,
		Country:      req.Country,
	}

	if result := database.GetDB().Create(&merchant); result.Error != nil {
		log.Error("Failed to create merchant",
			zap.String("merchant_name", req.MerchantName),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": result.Error.Error()})
	}

	log.Info("Merchant created",
		zap.Uint("id", merchant.ID),
		zap.String("merchant_name", merchant.MerchantName),
		zap.String("country", merchant.Country))

	return c.JSON(http.StatusCreated, merchant)
}

// UpdateMerchant handles updating an existing merchant
func UpdateMerchant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.UpdateMerchantCounter.Inc()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid merchant ID", zap.String("id", c.Param("id")), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid merchant ID"})
	}

	var req MerchantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse merchant update request",
			zap.Uint64("id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if msg := req.validate(); msg != "" {
		log.Error("Invalid merchant data",
			zap.Uint64("id", id),
			zap.String("merchant_name", req.MerchantName),
			zap.String("country", req.Country))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var merchant model.Merchant
	result := database.GetDB().First(&merchant, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Error("Merchant not found for update", zap.Uint64("id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "merchant not found"})
		}
		log.Error("Failed to retrieve merchant for update",
			zap.Uint64("id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": result.Error.Error()})
	}

	merchant.MerchantName = req.MerchantName
	merchant.Country = req.Country

	if result := database.GetDB().Save(&merchant); result.Error != nil {
		log.Error("Failed to update merchant",
			zap.Uint64("id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": result.Error.Error()})
	}

	log.Info("Merchant updated",
		zap.Uint("id", merchant.ID),
		zap.String("merchant_name", merchant.MerchantName),
		zap.String("country", merchant.Country))

	return c.JSON(http.StatusOK, merchant)
}

// DeleteMerchant handles deleting a merchant. Deleting an ID that does not
// exist still returns success: the row is gone either way, and list
// consumers retry deletes freely on that basis.
func DeleteMerchant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.DeleteMerchantCounter.Inc()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid merchant ID", zap.String("id", c.Param("id")), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid merchant ID"})
	}

	result := database.GetDB().Delete(&model.Merchant{}, id)
	if result.Error != nil {
		log.Error("Failed to delete merchant", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": result.Error.Error()})
	}

	if result.RowsAffected == 0 {
		log.Debug("Delete for absent merchant", zap.Uint64("id", id))
	} else {
		log.Info("Merchant deleted", zap.Uint64("id", id))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":      id,
		"message": "Merchant deleted",
	})
}
