package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fleet-management-api/internal/database"
	"fleet-management-api/internal/identity"
	"fleet-management-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateFleetAlertRequest represents the request payload for creating an alert
type CreateFleetAlertRequest struct {
	CompanyID    int    `json:"companyId" binding:"required"`
	VehicleID    int    `json:"vehicleId"`
	AlertType    string `json:"alertType" binding:"required"`
	AlertMessage string `json:"alertMessage" binding:"required"`
	CreatedBy    int    `json:"createdBy"`
}

// CreateFleetAlert handles POST /api/fleet-alerts
func CreateFleetAlert(c *gin.Context) {
	var req CreateFleetAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var alert models.FleetAlert
	err := db.Transaction(func(tx *gorm.DB) error {
		id, err := identity.NextSequenceID(tx, &models.FleetAlert{})
		if err != nil {
			return err
		}
		alert = models.FleetAlert{
			ID:           id,
			CompanyID:    req.CompanyID,
			VehicleID:    req.VehicleID,
			AlertType:    req.AlertType,
			AlertMessage: req.AlertMessage,
			AlertDate:    time.Now(),
			CreatedBy:    req.CreatedBy,
		}
		return tx.Create(&alert).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fleet alert"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Fleet alert created successfully",
		"alert":   alert,
	})
}

// GetFleetAlerts handles GET /api/fleet-alerts
// With ?unresolved=true only open alerts are returned.
func GetFleetAlerts(c *gin.Context) {
	query := database.GetDB().Model(&models.FleetAlert{})
	if companyID := c.Query("companyId"); companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}
	if c.Query("unresolved") == "true" {
		query = query.Where("resolved_at IS NULL")
	}

	var alerts []models.FleetAlert
	if err := query.Order("alert_date desc").Find(&alerts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fleet alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// ResolveFleetAlert handles PATCH /api/fleet-alerts/:id/resolve
func ResolveFleetAlert(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Alert ID must be a number"})
		return
	}

	db := database.GetDB()
	var alert models.FleetAlert
	if err := db.First(&alert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fleet alert not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fleet alert"})
		}
		return
	}

	now := time.Now()
	alert.ResolvedAt = &now
	if err := db.Model(&alert).Update("resolved_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve fleet alert"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Fleet alert resolved",
		"alert":   alert,
	})
}
