// Package tasks owns the task create/update protocol: the core Task write,
// the per-type dispatch to satellite handlers, and the transaction that makes
// the whole fan-out all-or-nothing.
package tasks

import (
	"errors"
	"fmt"
	"time"

	"fleet-management-api/internal/identity"
	"fleet-management-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned by UpdateTask when no task matches the id.
var ErrTaskNotFound = errors.New("task not found")

// maxIDAttempts bounds the collision-checked random draw for task ids.
const maxIDAttempts = 8

// HandlerFunc expands a task's additionalData into satellite records on the
// given transaction handle. It returns the satellite aggregate id, or 0 when
// no aggregate was produced.
type HandlerFunc func(tx *gorm.DB, taskID int, data datatypes.JSON) (int, error)

// Service orchestrates task creation and update. The two dispatch tables map
// every task type to its handler; a nil handler means the core Task fields
// alone represent the type.
type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	createHandlers map[models.TaskType]HandlerFunc
	updateHandlers map[models.TaskType]HandlerFunc
}

// NewService builds a Service with the default dispatch tables. Only
// TRANSPORT has a handler; all other types resolve to no-op.
func NewService(db *gorm.DB, log *zap.Logger) *Service {
	s := &Service{db: db, log: log}
	s.createHandlers = map[models.TaskType]HandlerFunc{
		models.TaskTypeTransport:   s.createTransport,
		models.TaskTypeWork:        nil,
		models.TaskTypeMaterial:    nil,
		models.TaskTypeTool:        nil,
		models.TaskTypeInspection:  nil,
		models.TaskTypeMaintenance: nil,
		models.TaskTypeAdmin:       nil,
		models.TaskTypeTraining:    nil,
		models.TaskTypeOther:       nil,
	}
	s.updateHandlers = map[models.TaskType]HandlerFunc{
		models.TaskTypeTransport:   s.updateTransport,
		models.TaskTypeWork:        nil,
		models.TaskTypeMaterial:    nil,
		models.TaskTypeTool:        nil,
		models.TaskTypeInspection:  nil,
		models.TaskTypeMaintenance: nil,
		models.TaskTypeAdmin:       nil,
		models.TaskTypeTraining:    nil,
		models.TaskTypeOther:       nil,
	}
	return s
}

// SetCreateHandler replaces the create handler for a task type. Used by tests
// to inject failing handlers.
func (s *Service) SetCreateHandler(t models.TaskType, h HandlerFunc) {
	s.createHandlers[t] = h
}

// SetUpdateHandler replaces the update handler for a task type.
func (s *Service) SetUpdateHandler(t models.TaskType, h HandlerFunc) {
	s.updateHandlers[t] = h
}

// CreateTaskInput is the payload for CreateTask. AdditionalData is stored raw
// on the task; its shape is only interpreted by the type handler.
type CreateTaskInput struct {
	TaskType       models.TaskType
	TaskName       string
	Description    string
	StartDate      string
	EndDate        string
	Status         string
	AdditionalData datatypes.JSON
}

// UpdateTaskInput carries the generic fields of an update. Every field
// replaces the stored value; there is no merge of unspecified fields.
type UpdateTaskInput struct {
	TaskName       string
	Description    string
	StartDate      string
	EndDate        string
	Status         string
	AdditionalData datatypes.JSON
}

// CreateTask inserts the core task, dispatches to the type handler, and
// back-links the satellite aggregate, all in one transaction. Any failure
// rolls back every write, including the core task row.
func (s *Service) CreateTask(in CreateTaskInput) (*models.Task, error) {
	var created models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		id, err := s.newTaskID(tx)
		if err != nil {
			return err
		}

		task := models.Task{
			ID:             id,
			TaskType:       in.TaskType,
			TaskName:       in.TaskName,
			Description:    in.Description,
			StartDate:      in.StartDate,
			EndDate:        in.EndDate,
			Status:         in.Status,
			AdditionalData: in.AdditionalData,
		}
		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		if handler := s.createHandlers[in.TaskType]; handler != nil {
			satelliteID, err := handler(tx, task.ID, in.AdditionalData)
			if err != nil {
				return err
			}
			if satelliteID != 0 {
				if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).
					Update("transport_task_id", satelliteID).Error; err != nil {
					return err
				}
				task.TransportTaskID = &satelliteID
			}
		}

		created = task
		return nil
	})
	if err != nil {
		s.log.Error("task create failed", zap.String("taskType", string(in.TaskType)), zap.Error(err))
		return nil, err
	}

	s.log.Info("task created",
		zap.Int("taskId", created.ID),
		zap.String("taskType", string(created.TaskType)))
	return &created, nil
}

// UpdateTask overwrites the task's generic fields and re-syncs satellite data
// through the update handler for the task's stored type. The handler is
// resolved from the type already persisted on the task, never from the
// payload. All writes share one transaction.
func (s *Service) UpdateTask(taskID int, in UpdateTaskInput) (*models.Task, error) {
	var updated models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Task{}).Where("id = ?", taskID).Updates(map[string]any{
			"task_name":       in.TaskName,
			"description":     in.Description,
			"start_date":      in.StartDate,
			"end_date":        in.EndDate,
			"status":          in.Status,
			"additional_data": in.AdditionalData,
			"updated_at":      time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTaskNotFound
		}

		if err := tx.First(&updated, "id = ?", taskID).Error; err != nil {
			return err
		}

		if handler := s.updateHandlers[updated.TaskType]; handler != nil {
			satelliteID, err := handler(tx, taskID, in.AdditionalData)
			if err != nil {
				return err
			}
			if satelliteID != 0 {
				if err := tx.Model(&models.Task{}).Where("id = ?", taskID).
					Update("transport_task_id", satelliteID).Error; err != nil {
					return err
				}
				updated.TransportTaskID = &satelliteID
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrTaskNotFound) {
			s.log.Error("task update failed", zap.Int("taskId", taskID), zap.Error(err))
		}
		return nil, err
	}

	s.log.Info("task updated", zap.Int("taskId", taskID))
	return &updated, nil
}

// newTaskID draws five-digit ids until one is free of collisions, bounded by
// maxIDAttempts. The check runs inside the create transaction so the id stays
// free until commit.
func (s *Service) newTaskID(tx *gorm.DB) (int, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := identity.NewTaskID()
		var count int64
		if err := tx.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return id, nil
		}
	}
	return 0, fmt.Errorf("could not allocate a task id after %d attempts", maxIDAttempts)
}
