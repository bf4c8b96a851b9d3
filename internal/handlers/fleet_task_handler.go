package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fleet-management-api/internal/cache"
	"fleet-management-api/internal/database"
	"fleet-management-api/internal/identity"
	"fleet-management-api/internal/models"
	"fleet-management-api/internal/notify"
	"fleet-management-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FleetNotifier delivers trip assignment emails. Wired from main; the noop
// default keeps tests and SMTP-less deployments quiet.
var FleetNotifier notify.Notifier = notify.Noop{}

// DriverAppURL is linked in assignment emails so drivers can open their trips.
var DriverAppURL = "http://localhost:3000"

// Reference-data caches for list enrichment. Entries expire quickly; the
// admin UI edits names rarely but lists often.
const refTTL = 30 * time.Second

var (
	companyNames = cache.New[int, string]()
	edgeNames    = cache.New[string, string]()
)

func companyName(db *gorm.DB, id int) string {
	if name, ok := companyNames.Get(id); ok {
		return name
	}
	var company models.Company
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		return "Unknown Company"
	}
	companyNames.Set(id, company.Name, refTTL)
	return company.Name
}

func refName(db *gorm.DB, kind string, id int, lookup func(int) (string, error)) string {
	key := fmt.Sprintf("%s:%d", kind, id)
	if name, ok := edgeNames.Get(key); ok {
		return name
	}
	name, err := lookup(id)
	if err != nil {
		return "Unknown " + kind
	}
	edgeNames.Set(key, name, refTTL)
	return name
}

// FleetTaskResponse is a fleet task with reference names resolved.
type FleetTaskResponse struct {
	models.FleetTask
	CompanyName string `json:"companyName"`
	DriverName  string `json:"driverName"`
	ProjectName string `json:"projectName"`
	VehicleCode string `json:"vehicleCode"`
}

func enrichFleetTask(db *gorm.DB, task models.FleetTask) FleetTaskResponse {
	return FleetTaskResponse{
		FleetTask:   task,
		CompanyName: companyName(db, task.CompanyID),
		DriverName: refName(db, "Driver", task.DriverID, func(id int) (string, error) {
			var employee models.Employee
			if err := db.First(&employee, "id = ?", id).Error; err != nil {
				return "", err
			}
			return employee.FullName, nil
		}),
		ProjectName: refName(db, "Project", task.ProjectID, func(id int) (string, error) {
			var project models.Project
			if err := db.First(&project, "id = ?", id).Error; err != nil {
				return "", err
			}
			return project.Name, nil
		}),
		VehicleCode: refName(db, "Vehicle", task.VehicleID, func(id int) (string, error) {
			var vehicle models.FleetVehicle
			if err := db.First(&vehicle, "id = ?", id).Error; err != nil {
				return "", err
			}
			if vehicle.VehicleCode != "" {
				return vehicle.VehicleCode, nil
			}
			return vehicle.RegistrationNo, nil
		}),
	}
}

// GetFleetTasks handles GET /api/fleet-tasks
// Paginated, optionally filtered by companyId, newest task date first.
func GetFleetTasks(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	offset := (page - 1) * limit

	db := database.GetDB()
	query := db.Model(&models.FleetTask{})
	if companyID := c.Query("companyId"); companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count fleet tasks"})
		return
	}

	var fleetTasks []models.FleetTask
	if err := query.Session(&gorm.Session{}).
		Order("task_date desc, id desc").Limit(limit).Offset(offset).
		Find(&fleetTasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fleet tasks"})
		return
	}

	enriched := make([]FleetTaskResponse, 0, len(fleetTasks))
	for _, task := range fleetTasks {
		enriched = append(enriched, enrichFleetTask(db, task))
	}

	c.JSON(http.StatusOK, gin.H{
		"fleetTasks": enriched,
		"count":      len(enriched),
		"total":      total,
		"page":       page,
		"limit":      limit,
	})
}

// GetFleetTaskByID handles GET /api/fleet-tasks/:id
func GetFleetTaskByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fleet task ID must be a number"})
		return
	}

	db := database.GetDB()
	var fleetTask models.FleetTask
	if err := db.First(&fleetTask, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fleet task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fleet task"})
		}
		return
	}

	c.JSON(http.StatusOK, enrichFleetTask(db, fleetTask))
}

// CreateFleetTaskRequest represents the request payload for a directly
// created fleet task (not going through the task orchestrator).
type CreateFleetTaskRequest struct {
	CompanyID          int                    `json:"companyId" binding:"required"`
	VehicleID          int                    `json:"vehicleId" binding:"required"`
	DriverID           int                    `json:"driverId"`
	ProjectID          int                    `json:"projectId"`
	TransportType      models.TransportType   `json:"transportType"`
	TaskDate           string                 `json:"taskDate" binding:"required"`
	PlannedPickupTime  string                 `json:"plannedPickupTime"`
	PlannedDropTime    string                 `json:"plannedDropTime"`
	PickupLocation     string                 `json:"pickupLocation"`
	PickupAddress      string                 `json:"pickupAddress"`
	DropLocation       string                 `json:"dropLocation"`
	DropAddress        string                 `json:"dropAddress"`
	ExpectedPassengers int                    `json:"expectedPassengers"`
	Status             models.FleetTaskStatus `json:"status"`
	Notes              string                 `json:"notes"`
	CreatedBy          int                    `json:"createdBy"`
}

// CreateFleetTask handles POST /api/fleet-tasks
// The assignment email goes out after the write commits and never fails the
// request.
func CreateFleetTask(c *gin.Context) {
	var req CreateFleetTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()

	var company models.Company
	if err := db.First(&company, "id = ?", req.CompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate company"})
		}
		return
	}

	taskDate, err := time.Parse("2006-01-02", req.TaskDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskDate must be YYYY-MM-DD"})
		return
	}

	status := req.Status
	if status == "" {
		status = models.FleetTaskPlanned
	}

	var fleetTask models.FleetTask
	err = db.Transaction(func(tx *gorm.DB) error {
		id, err := identity.NextSequenceID(tx, &models.FleetTask{})
		if err != nil {
			return err
		}
		fleetTask = models.FleetTask{
			ID:                 id,
			CompanyID:          req.CompanyID,
			VehicleID:          req.VehicleID,
			DriverID:           req.DriverID,
			ProjectID:          req.ProjectID,
			TransportType:      req.TransportType,
			TaskDate:           taskDate,
			PlannedPickupTime:  req.PlannedPickupTime,
			PlannedDropTime:    req.PlannedDropTime,
			PickupLocation:     req.PickupLocation,
			PickupAddress:      req.PickupAddress,
			DropLocation:       req.DropLocation,
			DropAddress:        req.DropAddress,
			ExpectedPassengers: req.ExpectedPassengers,
			Status:             status,
			Notes:              req.Notes,
			CreatedBy:          req.CreatedBy,
		}
		return tx.Create(&fleetTask).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fleet task: " + err.Error()})
		return
	}

	// Outside the transaction: neither the email nor the broadcast can undo
	// the write.
	go sendAssignmentEmail(db, fleetTask)
	broadcastFleetEvent("fleet_task_created", fleetTask)

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Fleet task created successfully",
		"fleetTask": enrichFleetTask(db, fleetTask),
	})
}

func sendAssignmentEmail(db *gorm.DB, fleetTask models.FleetTask) {
	var driver models.Employee
	if err := db.First(&driver, "id = ?", fleetTask.DriverID).Error; err != nil {
		return
	}
	if driver.Email == "" {
		return
	}

	var project models.Project
	_ = db.First(&project, "id = ?", fleetTask.ProjectID).Error
	var vehicle models.FleetVehicle
	_ = db.First(&vehicle, "id = ?", fleetTask.VehicleID).Error

	subject := "New Trip Assigned - " + project.Name
	body := fmt.Sprintf(`<h2>New Trip Assigned</h2>
<p>Hello %s,</p>
<p>You have been assigned a new transport trip.</p>
<ul>
  <li><strong>Project:</strong> %s</li>
  <li><strong>Vehicle:</strong> %s</li>
  <li><strong>Pickup:</strong> %s</li>
  <li><strong>Drop:</strong> %s</li>
</ul>
<p><a href="%s/tasks">View My Tasks</a></p>
<p>Regards,<br/>Fleet Management System</p>`,
		driver.FullName, project.Name, vehicle.RegistrationNo,
		fleetTask.PlannedPickupTime, fleetTask.PlannedDropTime, DriverAppURL)

	FleetNotifier.Send(driver.Email, subject, body)
}

func broadcastFleetEvent(eventType string, fleetTask models.FleetTask) {
	evt := map[string]any{
		"type":        eventType,
		"fleetTaskId": fleetTask.ID,
		"companyId":   fleetTask.CompanyID,
		"status":      fleetTask.Status,
		"version":     1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		realtime.GetHub().Broadcast(fleetTask.CompanyID, bytes)
	}
}

// UpdateFleetTaskRequest uses pointers so only provided fields change.
type UpdateFleetTaskRequest struct {
	DriverID           *int                    `json:"driverId"`
	VehicleID          *int                    `json:"vehicleId"`
	ProjectID          *int                    `json:"projectId"`
	TransportType      *models.TransportType   `json:"transportType"`
	PlannedPickupTime  *string                 `json:"plannedPickupTime"`
	PlannedDropTime    *string                 `json:"plannedDropTime"`
	PickupLocation     *string                 `json:"pickupLocation"`
	PickupAddress      *string                 `json:"pickupAddress"`
	DropLocation       *string                 `json:"dropLocation"`
	DropAddress        *string                 `json:"dropAddress"`
	ExpectedPassengers *int                    `json:"expectedPassengers"`
	Status             *models.FleetTaskStatus `json:"status"`
	Notes              *string                 `json:"notes"`
}

// UpdateFleetTask handles PUT /api/fleet-tasks/:id
func UpdateFleetTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fleet task ID must be a number"})
		return
	}

	var req UpdateFleetTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var fleetTask models.FleetTask
	if err := db.First(&fleetTask, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fleet task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fleet task"})
		}
		return
	}

	if req.DriverID != nil {
		fleetTask.DriverID = *req.DriverID
	}
	if req.VehicleID != nil {
		fleetTask.VehicleID = *req.VehicleID
	}
	if req.ProjectID != nil {
		fleetTask.ProjectID = *req.ProjectID
	}
	if req.TransportType != nil {
		fleetTask.TransportType = *req.TransportType
	}
	if req.PlannedPickupTime != nil {
		fleetTask.PlannedPickupTime = *req.PlannedPickupTime
	}
	if req.PlannedDropTime != nil {
		fleetTask.PlannedDropTime = *req.PlannedDropTime
	}
	if req.PickupLocation != nil {
		fleetTask.PickupLocation = *req.PickupLocation
	}
	if req.PickupAddress != nil {
		fleetTask.PickupAddress = *req.PickupAddress
	}
	if req.DropLocation != nil {
		fleetTask.DropLocation = *req.DropLocation
	}
	if req.DropAddress != nil {
		fleetTask.DropAddress = *req.DropAddress
	}
	if req.ExpectedPassengers != nil {
		fleetTask.ExpectedPassengers = *req.ExpectedPassengers
	}
	if req.Status != nil {
		fleetTask.Status = *req.Status
	}
	if req.Notes != nil {
		fleetTask.Notes = *req.Notes
	}

	if err := db.Save(&fleetTask).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fleet task"})
		return
	}

	broadcastFleetEvent("fleet_task_updated", fleetTask)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Fleet task updated successfully",
		"fleetTask": enrichFleetTask(db, fleetTask),
	})
}

// DeleteFleetTask handles DELETE /api/fleet-tasks/:id
// Child rows go with the fleet task.
func DeleteFleetTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fleet task ID must be a number"})
		return
	}

	db := database.GetDB()
	var fleetTask models.FleetTask
	if err := db.First(&fleetTask, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fleet task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fleet task"})
		}
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{
			&models.FleetTaskPassenger{},
			&models.FleetTaskMaterial{},
			&models.FleetTaskTool{},
		} {
			if err := tx.Where("fleet_task_id = ?", fleetTask.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&fleetTask).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fleet task"})
		return
	}

	zap.L().Info("fleet task deleted", zap.Int("fleetTaskId", fleetTask.ID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Fleet task deleted successfully",
		"id":      fleetTask.ID,
	})
}

// GetFleetTaskStats handles GET /api/fleet-tasks/stats/:companyId
// Returns fleet task counts per status for one company.
func GetFleetTaskStats(c *gin.Context) {
	companyID, err := strconv.Atoi(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID must be a number"})
		return
	}

	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	if err := database.GetDB().Model(&models.FleetTask{}).
		Select("status, COUNT(*) as count").
		Where("company_id = ?", companyID).
		Group("status").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	counts := map[string]int64{
		string(models.FleetTaskPlanned):   0,
		string(models.FleetTaskOngoing):   0,
		string(models.FleetTaskCompleted): 0,
		string(models.FleetTaskCancelled): 0,
	}
	var total int64
	for _, r := range rows {
		counts[r.Status] = r.Count
		total += r.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"planned":   counts[string(models.FleetTaskPlanned)],
		"ongoing":   counts[string(models.FleetTaskOngoing)],
		"completed": counts[string(models.FleetTaskCompleted)],
		"cancelled": counts[string(models.FleetTaskCancelled)],
		"total":     total,
	})
}
