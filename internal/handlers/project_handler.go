package handlers

import (
	"net/http"

	"fleet-management-api/internal/database"
	"fleet-management-api/internal/identity"
	"fleet-management-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	CompanyID int    `json:"companyId" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

// CreateProject handles POST /api/projects
func CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var project models.Project
	err := db.Transaction(func(tx *gorm.DB) error {
		id, err := identity.NextSequenceID(tx, &models.Project{})
		if err != nil {
			return err
		}
		project = models.Project{
			ID:        id,
			CompanyID: req.CompanyID,
			Name:      req.Name,
			Status:    "ACTIVE",
		}
		return tx.Create(&project).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": project,
	})
}

// GetProjects handles GET /api/projects
func GetProjects(c *gin.Context) {
	query := database.GetDB().Model(&models.Project{})
	if companyID := c.Query("companyId"); companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}

	var projects []models.Project
	if err := query.Order("name asc").Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}
