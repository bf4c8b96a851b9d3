package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fleet-management-api/internal/database"
	"fleet-management-api/internal/identity"
	"fleet-management-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateDriverRequest represents the request payload for creating a driver
type CreateDriverRequest struct {
	CompanyID     int                 `json:"companyId" binding:"required"`
	EmployeeID    int                 `json:"employeeId" binding:"required"`
	LicenseNo     string              `json:"licenseNo" binding:"required"`
	LicenseExpiry string              `json:"licenseExpiry"`
	VehicleID     int                 `json:"vehicleId"`
	Status        models.DriverStatus `json:"status"`
}

// CreateDriver handles POST /api/drivers
// The employee must exist; name/code/title are denormalized from it. Only one
// ACTIVE driver record per employee is allowed.
func CreateDriver(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()

	var employee models.Employee
	if err := db.First(&employee, "id = ?", req.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Employee not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate employee"})
		}
		return
	}

	status := req.Status
	if status == "" {
		status = models.DriverActive
	}

	if status == models.DriverActive {
		var existing models.Driver
		err := db.Where("employee_id = ? AND status = ?", req.EmployeeID, models.DriverActive).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Active driver already exists for this employee"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing drivers"})
			return
		}
	}

	var driver models.Driver
	err := db.Transaction(func(tx *gorm.DB) error {
		id, err := identity.NextSequenceID(tx, &models.Driver{})
		if err != nil {
			return err
		}
		driver = models.Driver{
			ID:            id,
			CompanyID:     req.CompanyID,
			EmployeeID:    req.EmployeeID,
			EmployeeName:  employee.FullName,
			EmployeeCode:  employee.EmployeeCode,
			JobTitle:      employee.JobTitle,
			LicenseNo:     req.LicenseNo,
			LicenseExpiry: req.LicenseExpiry,
			VehicleID:     req.VehicleID,
			Status:        status,
		}
		return tx.Create(&driver).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Driver created successfully",
		"driver":  driver,
	})
}

// GetDrivers handles GET /api/drivers
func GetDrivers(c *gin.Context) {
	var drivers []models.Driver
	if err := database.GetDB().Order("created_at desc").Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drivers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drivers": drivers,
		"count":   len(drivers),
	})
}

// GetDriversByCompany handles GET /api/drivers/company/:companyId
func GetDriversByCompany(c *gin.Context) {
	companyID, err := strconv.Atoi(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID. Must be a number."})
		return
	}

	var drivers []models.Driver
	if err := database.GetDB().
		Where("company_id = ?", companyID).
		Order("employee_name asc").
		Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drivers by company"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drivers":   drivers,
		"companyId": companyID,
		"count":     len(drivers),
	})
}

// DeleteDriver handles DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Driver ID must be a number"})
		return
	}

	var driver models.Driver
	db := database.GetDB()
	if err := db.First(&driver, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch driver"})
		}
		return
	}

	if err := db.Delete(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete driver"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver deleted successfully",
		"id":      id,
	})
}
