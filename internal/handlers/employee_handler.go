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

// CreateEmployeeRequest represents the request payload for creating an employee
type CreateEmployeeRequest struct {
	CompanyID    int                   `json:"companyId" binding:"required"`
	FullName     string                `json:"fullName" binding:"required"`
	EmployeeCode string                `json:"employeeCode"`
	JobTitle     string                `json:"jobTitle"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone"`
	Status       models.EmployeeStatus `json:"status"`
}

// CreateEmployee handles POST /api/employees
func CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()

	var company models.Company
	if err := db.First(&company, "id = ?", req.CompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Company not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate company"})
		}
		return
	}

	status := req.Status
	if status == "" {
		status = models.EmployeeActive
	}

	var employee models.Employee
	err := db.Transaction(func(tx *gorm.DB) error {
		id, err := identity.NextSequenceID(tx, &models.Employee{})
		if err != nil {
			return err
		}
		employee = models.Employee{
			ID:           id,
			CompanyID:    req.CompanyID,
			FullName:     req.FullName,
			EmployeeCode: req.EmployeeCode,
			JobTitle:     req.JobTitle,
			Email:        req.Email,
			Phone:        req.Phone,
			Status:       status,
		}
		return tx.Create(&employee).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Employee created successfully",
		"employee": employee,
	})
}

// GetEmployees handles GET /api/employees
func GetEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := database.GetDB().Order("created_at desc").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": employees,
		"count":     len(employees),
	})
}

// GetEmployeesByCompany handles GET /api/employees/company/:companyId
// With ?active=true only ACTIVE employees are returned (driver assignment
// picker), sorted by name instead of recency.
func GetEmployeesByCompany(c *gin.Context) {
	companyID, err := strconv.Atoi(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID. Must be a number."})
		return
	}

	query := database.GetDB().Where("company_id = ?", companyID)
	order := "created_at desc"
	if c.Query("active") == "true" {
		query = query.Where("status = ?", models.EmployeeActive)
		order = "full_name asc"
	}

	var employees []models.Employee
	if err := query.Order(order).Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees by company"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": employees,
		"companyId": companyID,
		"count":     len(employees),
	})
}

// UpdateEmployeeRequest represents the request payload for updating an employee
type UpdateEmployeeRequest struct {
	FullName     *string                `json:"fullName"`
	EmployeeCode *string                `json:"employeeCode"`
	JobTitle     *string                `json:"jobTitle"`
	Email        *string                `json:"email"`
	Phone        *string                `json:"phone"`
	Status       *models.EmployeeStatus `json:"status"`
}

// UpdateEmployee handles PUT /api/employees/:id
func UpdateEmployee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Employee ID must be a number"})
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var employee models.Employee
	if err := db.First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employee"})
		}
		return
	}

	if req.FullName != nil {
		employee.FullName = *req.FullName
	}
	if req.EmployeeCode != nil {
		employee.EmployeeCode = *req.EmployeeCode
	}
	if req.JobTitle != nil {
		employee.JobTitle = *req.JobTitle
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Status != nil {
		employee.Status = *req.Status
	}

	if err := db.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Employee updated successfully",
		"employee": employee,
	})
}
