package tasks

import (
	"testing"

	"fleet-management-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestCreateTask_MaterialTransport(t *testing.T) {
	db, svc := newTestService(t)

	payload := transportPayload(t, TransportData{
		DriverID:      7,
		VehicleID:     3,
		CompanyID:     1,
		TransportType: models.TransportMaterial,
		MaterialQuantities: []MaterialQuantity{
			{MaterialID: 100, Quantity: 20},
			{MaterialID: 101, Quantity: 5},
		},
	})
	task, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		AdditionalData: payload,
	})
	require.NoError(t, err)

	var materials []models.FleetTaskMaterial
	require.NoError(t, db.Where("fleet_task_id = ?", *task.TransportTaskID).Order("material_id").Find(&materials).Error)
	require.Len(t, materials, 2)
	require.Equal(t, 100, materials[0].MaterialID)
	require.Equal(t, 20, materials[0].Quantity)
	require.Equal(t, 101, materials[1].MaterialID)

	var passengers, tools int64
	require.NoError(t, db.Model(&models.FleetTaskPassenger{}).Count(&passengers).Error)
	require.NoError(t, db.Model(&models.FleetTaskTool{}).Count(&tools).Error)
	require.Zero(t, passengers)
	require.Zero(t, tools)
}

func TestCreateTask_ToolTransport(t *testing.T) {
	db, svc := newTestService(t)

	payload := transportPayload(t, TransportData{
		TransportType: models.TransportTool,
		ToolQuantities: []ToolQuantity{
			{ToolID: 55, Quantity: 2},
		},
	})
	task, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		AdditionalData: payload,
	})
	require.NoError(t, err)

	var tools []models.FleetTaskTool
	require.NoError(t, db.Where("fleet_task_id = ?", *task.TransportTaskID).Find(&tools).Error)
	require.Len(t, tools, 1)
	require.Equal(t, 55, tools[0].ToolID)
	require.Equal(t, 2, tools[0].Quantity)
}

func TestCreateTask_EmptyChildArrayIsNotAnError(t *testing.T) {
	db, svc := newTestService(t)

	payload := transportPayload(t, TransportData{
		TransportType:  models.TransportWorker,
		PickupLocation: "Depot A",
	})
	task, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		AdditionalData: payload,
	})
	require.NoError(t, err)
	require.NotNil(t, task.TransportTaskID)

	var passengers int64
	require.NoError(t, db.Model(&models.FleetTaskPassenger{}).Count(&passengers).Error)
	require.Zero(t, passengers)
}

func TestCreateTask_UnknownTransportTypeInsertsNoChildren(t *testing.T) {
	db, svc := newTestService(t)

	payload := transportPayload(t, TransportData{
		TransportType: models.TransportType("HELICOPTER_TRANSPORT"),
		Workers:       []int{1, 2},
	})
	task, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		AdditionalData: payload,
	})
	require.NoError(t, err)
	require.NotNil(t, task.TransportTaskID)

	for _, model := range []any{
		&models.FleetTaskPassenger{},
		&models.FleetTaskMaterial{},
		&models.FleetTaskTool{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.Zero(t, count)
	}
}

func TestUpdateTask_TransportTypeSwitchMovesChildSet(t *testing.T) {
	db, svc := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		AdditionalData: workerPayload(t, 1, 2, 3),
	})
	require.NoError(t, err)
	fleetTaskID := *task.TransportTaskID

	payload := transportPayload(t, TransportData{
		TransportType: models.TransportMaterial,
		MaterialQuantities: []MaterialQuantity{
			{MaterialID: 9, Quantity: 4},
		},
	})
	_, err = svc.UpdateTask(task.ID, UpdateTaskInput{AdditionalData: payload})
	require.NoError(t, err)

	// The wipe clears the passenger set; only the material set is populated.
	var passengers, materials int64
	require.NoError(t, db.Model(&models.FleetTaskPassenger{}).Where("fleet_task_id = ?", fleetTaskID).Count(&passengers).Error)
	require.NoError(t, db.Model(&models.FleetTaskMaterial{}).Where("fleet_task_id = ?", fleetTaskID).Count(&materials).Error)
	require.Zero(t, passengers)
	require.EqualValues(t, 1, materials)

	var fleetTask models.FleetTask
	require.NoError(t, db.First(&fleetTask, "id = ?", fleetTaskID).Error)
	require.Equal(t, models.TransportMaterial, fleetTask.TransportType)
}

func TestUpdateTask_FleetTaskIDStableAcrossUpdates(t *testing.T) {
	db, svc := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		AdditionalData: workerPayload(t, 1),
	})
	require.NoError(t, err)
	originalID := *task.TransportTaskID

	for i := 0; i < 3; i++ {
		updated, err := svc.UpdateTask(task.ID, UpdateTaskInput{
			AdditionalData: workerPayload(t, 1, 2),
		})
		require.NoError(t, err)
		require.Equal(t, originalID, *updated.TransportTaskID)
	}

	var count int64
	require.NoError(t, db.Model(&models.FleetTask{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
