package tasks

import (
	"encoding/json"
	"errors"
	"testing"

	"fleet-management-api/internal/models"
	"fleet-management-api/internal/testutil"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*gorm.DB, *Service) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return db, NewService(db, zap.NewNop())
}

func transportPayload(t *testing.T, data TransportData) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return raw
}

func workerPayload(t *testing.T, workers ...int) datatypes.JSON {
	return transportPayload(t, TransportData{
		DriverID:       7,
		VehicleID:      3,
		CompanyID:      1,
		ProjectID:      2,
		TransportType:  models.TransportWorker,
		PickupLocation: "Depot A",
		DropLocation:   "Site 12",
		PickupTime:     "2026-09-01T06:30:00Z",
		DropTime:       "2026-09-01T07:15:00Z",
		Workers:        workers,
	})
}

func TestCreateTask_TransportCreatesFleetTaskAndBackReference(t *testing.T) {
	db, svc := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		TaskName:       "Morning crew run",
		Status:         "PLANNED",
		AdditionalData: workerPayload(t, 1, 2, 3),
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, task.ID, 10000)
	require.Less(t, task.ID, 100000)
	require.NotNil(t, task.TransportTaskID)

	var fleetTask models.FleetTask
	require.NoError(t, db.Where("task_id = ?", task.ID).First(&fleetTask).Error)
	require.Equal(t, *task.TransportTaskID, fleetTask.ID)
	require.Equal(t, models.FleetTaskPlanned, fleetTask.Status)
	require.Equal(t, "Depot A", fleetTask.PickupLocation)
	require.Equal(t, fleetTask.PickupTime, fleetTask.PlannedPickupTime)

	// Back-reference must be persisted, not just set on the returned value.
	var stored models.Task
	require.NoError(t, db.First(&stored, "id = ?", task.ID).Error)
	require.NotNil(t, stored.TransportTaskID)
	require.Equal(t, fleetTask.ID, *stored.TransportTaskID)
}

func TestCreateTask_NonTransportTypesNeverCreateFleetTasks(t *testing.T) {
	db, svc := newTestService(t)

	for _, taskType := range []models.TaskType{
		models.TaskTypeWork,
		models.TaskTypeMaterial,
		models.TaskTypeTool,
		models.TaskTypeInspection,
		models.TaskTypeMaintenance,
		models.TaskTypeAdmin,
		models.TaskTypeTraining,
		models.TaskTypeOther,
	} {
		// Transport-shaped payload on a non-transport type must be ignored.
		task, err := svc.CreateTask(CreateTaskInput{
			TaskType:       taskType,
			TaskName:       "generic " + string(taskType),
			AdditionalData: workerPayload(t, 1, 2),
		})
		require.NoError(t, err, "taskType %s", taskType)
		require.Nil(t, task.TransportTaskID)
	}

	var count int64
	require.NoError(t, db.Model(&models.FleetTask{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateTask_ChildSetExclusivity(t *testing.T) {
	db, svc := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		AdditionalData: workerPayload(t, 1, 2, 3),
	})
	require.NoError(t, err)

	fleetTaskID := *task.TransportTaskID
	var passengers, materials, tools int64
	require.NoError(t, db.Model(&models.FleetTaskPassenger{}).Where("fleet_task_id = ?", fleetTaskID).Count(&passengers).Error)
	require.NoError(t, db.Model(&models.FleetTaskMaterial{}).Where("fleet_task_id = ?", fleetTaskID).Count(&materials).Error)
	require.NoError(t, db.Model(&models.FleetTaskTool{}).Where("fleet_task_id = ?", fleetTaskID).Count(&tools).Error)
	require.EqualValues(t, 3, passengers)
	require.Zero(t, materials)
	require.Zero(t, tools)
}

func TestCreateTask_HandlerFailureRollsBackEverything(t *testing.T) {
	db, svc := newTestService(t)

	// The injected handler runs the real transport expansion, so the Task,
	// FleetTask and passenger rows all exist inside the transaction, then
	// fails as if the last child insert blew up.
	handlerErr := errors.New("child insert failed")
	svc.SetCreateHandler(models.TaskTypeTransport, func(tx *gorm.DB, taskID int, data datatypes.JSON) (int, error) {
		if _, err := svc.createTransport(tx, taskID, data); err != nil {
			return 0, err
		}
		return 0, handlerErr
	})

	_, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		AdditionalData: workerPayload(t, 1, 2, 3),
	})
	require.ErrorIs(t, err, handlerErr)

	for _, model := range []any{
		&models.Task{},
		&models.FleetTask{},
		&models.FleetTaskPassenger{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.Zero(t, count, "%T must be rolled back", model)
	}
}

func TestCreateTask_MalformedTransportPayloadAborts(t *testing.T) {
	db, svc := newTestService(t)

	_, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		AdditionalData: datatypes.JSON(`{"transportType":`),
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateTask_MissingAdditionalDataOnTransportAborts(t *testing.T) {
	db, svc := newTestService(t)

	_, err := svc.CreateTask(CreateTaskInput{TaskType: models.TaskTypeTransport})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateTask_WipeAndReinsertByRowIdentity(t *testing.T) {
	db, svc := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		AdditionalData: workerPayload(t, 1, 2, 3),
	})
	require.NoError(t, err)
	fleetTaskID := *task.TransportTaskID

	var before []models.FleetTaskPassenger
	require.NoError(t, db.Where("fleet_task_id = ?", fleetTaskID).Find(&before).Error)
	require.Len(t, before, 3)
	oldRowIDs := make(map[uint]bool, len(before))
	for _, p := range before {
		oldRowIDs[p.ID] = true
	}

	_, err = svc.UpdateTask(task.ID, UpdateTaskInput{
		TaskName:       task.TaskName,
		Status:         "PLANNED",
		AdditionalData: workerPayload(t, 4, 5),
	})
	require.NoError(t, err)

	var after []models.FleetTaskPassenger
	require.NoError(t, db.Where("fleet_task_id = ?", fleetTaskID).Find(&after).Error)
	require.Len(t, after, 2)
	workers := make([]int, 0, 2)
	for _, p := range after {
		require.False(t, oldRowIDs[p.ID], "row %d survived the wipe", p.ID)
		workers = append(workers, p.WorkerEmployeeID)
	}
	require.ElementsMatch(t, []int{4, 5}, workers)
}

func TestUpdateTask_CreatesFleetTaskWhenMissing(t *testing.T) {
	db, svc := newTestService(t)

	// A transport task persisted without a fleet task, as if created before
	// the handler existed.
	orphan := models.Task{ID: 41234, TaskType: models.TaskTypeTransport, TaskName: "legacy"}
	require.NoError(t, db.Create(&orphan).Error)

	updated, err := svc.UpdateTask(orphan.ID, UpdateTaskInput{
		TaskName:       "legacy",
		AdditionalData: workerPayload(t, 8, 9),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.TransportTaskID)

	var fleetTask models.FleetTask
	require.NoError(t, db.Where("task_id = ?", orphan.ID).First(&fleetTask).Error)
	require.Equal(t, *updated.TransportTaskID, fleetTask.ID)

	var passengers int64
	require.NoError(t, db.Model(&models.FleetTaskPassenger{}).Where("fleet_task_id = ?", fleetTask.ID).Count(&passengers).Error)
	require.EqualValues(t, 2, passengers)
}

func TestUpdateTask_FieldOverwriteIsIdempotent(t *testing.T) {
	db, svc := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{
		TaskType:       models.TaskTypeTransport,
		AdditionalData: workerPayload(t, 1),
	})
	require.NoError(t, err)

	for _, location := range []string{"Depot B", "Depot C"} {
		payload := transportPayload(t, TransportData{
			TransportType:  models.TransportWorker,
			PickupLocation: location,
			DropLocation:   "Site 12",
			Workers:        []int{1},
		})
		_, err = svc.UpdateTask(task.ID, UpdateTaskInput{AdditionalData: payload})
		require.NoError(t, err)
	}

	var fleetTask models.FleetTask
	require.NoError(t, db.Where("task_id = ?", task.ID).First(&fleetTask).Error)
	require.Equal(t, "Depot C", fleetTask.PickupLocation)
}

func TestUpdateTask_NotFound(t *testing.T) {
	db, svc := newTestService(t)

	_, err := svc.UpdateTask(99999, UpdateTaskInput{TaskName: "ghost"})
	require.ErrorIs(t, err, ErrTaskNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateTask_DispatchUsesStoredType(t *testing.T) {
	db, svc := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{
		TaskType: models.TaskTypeWork,
		TaskName: "inventory count",
	})
	require.NoError(t, err)

	// A transport-shaped payload on a WORK task must not reach any handler.
	_, err = svc.UpdateTask(task.ID, UpdateTaskInput{
		TaskName:       "inventory count",
		AdditionalData: workerPayload(t, 1, 2),
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.FleetTask{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateTask_TaskIDsStayUnique(t *testing.T) {
	db, svc := newTestService(t)

	// The draw is collision-checked against the table, so repeated creates
	// never hand out a duplicate even when the random draw repeats.
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		task, err := svc.CreateTask(CreateTaskInput{TaskType: models.TaskTypeOther})
		require.NoError(t, err)
		require.False(t, seen[task.ID], "duplicate task id %d", task.ID)
		seen[task.ID] = true
	}

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	require.EqualValues(t, 200, count)
}
