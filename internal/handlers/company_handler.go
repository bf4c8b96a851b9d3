package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fleet-management-api/internal/database"
	"fleet-management-api/internal/identity"
	"fleet-management-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCompanyRequest represents the request payload for creating a company
type CreateCompanyRequest struct {
	Name       string `json:"name" binding:"required"`
	TenantCode string `json:"tenantCode" binding:"required"`
}

// CreateCompany handles POST /api/companies
func CreateCompany(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	tenantCode := strings.ToUpper(strings.TrimSpace(req.TenantCode))
	if name == "" || tenantCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and tenantCode cannot be empty"})
		return
	}

	db := database.GetDB()

	var existing models.Company
	if err := db.Where("tenant_code = ?", tenantCode).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company with tenant code " + tenantCode + " already exists"})
		return
	}

	var company models.Company
	err := db.Transaction(func(tx *gorm.DB) error {
		id, err := identity.NextSequenceID(tx, &models.Company{})
		if err != nil {
			return err
		}
		company = models.Company{ID: id, Name: name, TenantCode: tenantCode}
		return tx.Create(&company).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Company created successfully",
		"company": company,
	})
}

// GetCompanies handles GET /api/companies
func GetCompanies(c *gin.Context) {
	var companies []models.Company
	if err := database.GetDB().Order("created_at desc").Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch companies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"count":     len(companies),
	})
}

// GetCompanyByID handles GET /api/companies/:id
func GetCompanyByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID must be a number"})
		return
	}

	var company models.Company
	if err := database.GetDB().First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch company"})
		}
		return
	}

	c.JSON(http.StatusOK, company)
}

// UpdateCompanyRequest represents the request payload for updating a company
type UpdateCompanyRequest struct {
	Name       *string `json:"name"`
	TenantCode *string `json:"tenantCode"`
}

// UpdateCompany handles PUT /api/companies/:id
func UpdateCompany(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID must be a number"})
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var company models.Company
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch company"})
		}
		return
	}

	if req.Name != nil {
		company.Name = strings.TrimSpace(*req.Name)
	}
	if req.TenantCode != nil {
		company.TenantCode = strings.ToUpper(strings.TrimSpace(*req.TenantCode))
	}

	if err := db.Save(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Company updated successfully",
		"company": company,
	})
}
