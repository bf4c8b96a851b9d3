package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fleet-management-api/internal/database"
	"fleet-management-api/internal/models"
	"fleet-management-api/internal/realtime"
	"fleet-management-api/internal/tasks"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	TaskType       models.TaskType `json:"taskType" binding:"required"`
	TaskName       string          `json:"taskName" binding:"required"`
	Description    string          `json:"description"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	Status         string          `json:"status"`
	AdditionalData json.RawMessage `json:"additionalData"`
}

// UpdateTaskRequest represents the request payload for updating a task.
// Every generic field replaces the stored value; there is no partial merge.
type UpdateTaskRequest struct {
	TaskName       string          `json:"taskName"`
	Description    string          `json:"description"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	Status         string          `json:"status"`
	AdditionalData json.RawMessage `json:"additionalData"`
}

// UpdateTaskStatusRequest represents a minimal request to change status
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func taskService() *tasks.Service {
	return tasks.NewService(database.GetDB(), zap.L())
}

// broadcastTaskEvent pushes a task lifecycle event onto the company channel
// carried in the transport payload, when there is one.
func broadcastTaskEvent(eventType string, task *models.Task) {
	var payload struct {
		CompanyID int `json:"companyId"`
	}
	if len(task.AdditionalData) > 0 {
		_ = json.Unmarshal(task.AdditionalData, &payload)
	}
	if payload.CompanyID == 0 {
		return
	}
	evt := map[string]any{
		"type":     eventType,
		"taskId":   task.ID,
		"taskType": task.TaskType,
		"version":  1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		realtime.GetHub().Broadcast(payload.CompanyID, bytes)
	}
}

/*
*
CreateTask handles POST /api/tasks
Creates a core task and, via the orchestrator, any satellite aggregate its
type calls for. The whole fan-out is atomic.
*/
func CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if !req.TaskType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid taskType"})
		return
	}

	task, err := taskService().CreateTask(tasks.CreateTaskInput{
		TaskType:       req.TaskType,
		TaskName:       req.TaskName,
		Description:    req.Description,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         req.Status,
		AdditionalData: datatypes.JSON(req.AdditionalData),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create task: " + err.Error(),
		})
		return
	}

	broadcastTaskEvent("task_created", task)

	c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/:id
// Overwrites the generic fields and re-syncs the satellite aggregate for the
// task's stored type.
func UpdateTask(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID must be a number"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	task, err := taskService().UpdateTask(taskID, tasks.UpdateTaskInput{
		TaskName:       req.TaskName,
		Description:    req.Description,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         req.Status,
		AdditionalData: datatypes.JSON(req.AdditionalData),
	})
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update task: " + err.Error(),
		})
		return
	}

	broadcastTaskEvent("task_updated", task)

	c.JSON(http.StatusOK, task)
}

/*
*
GetTasks handles GET /api/tasks
Query params: page (default 1), limit (default 20), sort (asc|desc on
created_at, default desc), taskType and status filters.
*/
func GetTasks(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	order := "created_at desc"
	if strings.ToLower(c.DefaultQuery("sort", "desc")) == "asc" {
		order = "created_at asc"
	}

	query := database.GetDB().Model(&models.Task{})
	if taskType := c.Query("taskType"); taskType != "" {
		query = query.Where("task_type = ?", taskType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count tasks"})
		return
	}

	var taskList []models.Task
	if err := query.Session(&gorm.Session{}).Order(order).Limit(limit).Offset(offset).Find(&taskList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": taskList,
		"count": len(taskList),
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetTaskByID handles GET /api/tasks/:id
func GetTaskByID(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID must be a number"})
		return
	}

	var task models.Task
	if err := database.GetDB().First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status
// Updates only the status column. Any string is accepted; transitions are a
// UI concern.
func UpdateTaskStatus(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID must be a number"})
		return
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task
	if err := database.GetDB().First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	task.Status = req.Status
	if err := database.GetDB().Model(&task).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, task)
}
