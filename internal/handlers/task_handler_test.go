package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleet-management-api/internal/auth"
	"fleet-management-api/internal/database"
	"fleet-management-api/internal/middleware"
	"fleet-management-api/internal/models"
	"fleet-management-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupTaskRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.POST("/api/tasks", CreateTask)
	r.PUT("/api/tasks/:id", UpdateTask)
	r.GET("/api/tasks/:id", GetTaskByID)
	r.PATCH("/api/tasks/:id/status", UpdateTaskStatus)
	return r
}

func authedRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	token, err := auth.GenerateToken(1, "dispatcher@example.com")
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestCreateTask_Transport(t *testing.T) {
	r := setupTaskRouter(t)

	payload := map[string]any{
		"taskType": "TRANSPORT",
		"taskName": "Morning crew run",
		"status":   "PLANNED",
		"additionalData": map[string]any{
			"driverId":       7,
			"vehicleId":      3,
			"companyId":      1,
			"transportType":  "WORKER_TRANSPORT",
			"pickupLocation": "Depot A",
			"dropLocation":   "Site 12",
			"workers":        []int{11, 12},
		},
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/tasks", payload))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, models.TaskTypeTransport, created.TaskType)
	require.NotNil(t, created.TransportTaskID)

	var passengers int64
	require.NoError(t, database.DB.Model(&models.FleetTaskPassenger{}).
		Where("fleet_task_id = ?", *created.TransportTaskID).Count(&passengers).Error)
	require.EqualValues(t, 2, passengers)
}

func TestCreateTask_InvalidTaskType(t *testing.T) {
	r := setupTaskRouter(t)

	payload := map[string]any{
		"taskType": "TELEPORT",
		"taskName": "nope",
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/tasks", payload))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask_NotFoundMapsTo404(t *testing.T) {
	r := setupTaskRouter(t)

	payload := map[string]any{"taskName": "ghost"}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPut, "/api/tasks/54321", payload))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTaskStatus(t *testing.T) {
	r := setupTaskRouter(t)

	require.NoError(t, database.DB.Create(&models.Task{
		ID:       31111,
		TaskType: models.TaskTypeWork,
		TaskName: "inventory count",
		Status:   "PLANNED",
	}).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPatch, "/api/tasks/31111/status", map[string]any{
		"status": "COMPLETED",
	}))
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Task
	require.NoError(t, database.DB.First(&stored, "id = ?", 31111).Error)
	require.Equal(t, "COMPLETED", stored.Status)
}
