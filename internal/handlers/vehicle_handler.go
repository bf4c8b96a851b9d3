package handlers

import (
	"net/http"
	"strconv"

	"fleet-management-api/internal/database"
	"fleet-management-api/internal/identity"
	"fleet-management-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateVehicleRequest represents the request payload for creating a vehicle
type CreateVehicleRequest struct {
	CompanyID      int    `json:"companyId" binding:"required"`
	VehicleCode    string `json:"vehicleCode"`
	RegistrationNo string `json:"registrationNo" binding:"required"`
	Capacity       int    `json:"capacity"`
}

// CreateVehicle handles POST /api/fleet-vehicles
func CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var vehicle models.FleetVehicle
	err := db.Transaction(func(tx *gorm.DB) error {
		id, err := identity.NextSequenceID(tx, &models.FleetVehicle{})
		if err != nil {
			return err
		}
		vehicle = models.FleetVehicle{
			ID:             id,
			CompanyID:      req.CompanyID,
			VehicleCode:    req.VehicleCode,
			RegistrationNo: req.RegistrationNo,
			Capacity:       req.Capacity,
			Status:         "ACTIVE",
		}
		return tx.Create(&vehicle).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vehicle created successfully",
		"vehicle": vehicle,
	})
}

// GetVehicles handles GET /api/fleet-vehicles
// Optional query param companyId filters to one company.
func GetVehicles(c *gin.Context) {
	query := database.GetDB().Model(&models.FleetVehicle{})
	if companyID := c.Query("companyId"); companyID != "" {
		if _, err := strconv.Atoi(companyID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID. Must be a number."})
			return
		}
		query = query.Where("company_id = ?", companyID)
	}

	var vehicles []models.FleetVehicle
	if err := query.Order("vehicle_code asc").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}
