package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fleet-management-api/internal/identity"
	"fleet-management-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaterialQuantity is one material line in a transport payload.
type MaterialQuantity struct {
	MaterialID int `json:"materialId"`
	Quantity   int `json:"quantity"`
}

// ToolQuantity is one tool line in a transport payload.
type ToolQuantity struct {
	ToolID   int `json:"toolId"`
	Quantity int `json:"quantity"`
}

// TransportData is the additionalData shape for TRANSPORT tasks. Exactly one
// of Workers/MaterialQuantities/ToolQuantities is consumed, selected by
// TransportType; the others are ignored.
type TransportData struct {
	DriverID           int                  `json:"driverId"`
	VehicleID          int                  `json:"vehicleId"`
	CompanyID          int                  `json:"companyId"`
	ProjectID          int                  `json:"projectId"`
	TransportType      models.TransportType `json:"transportType"`
	PickupLocation     string               `json:"pickupLocation"`
	DropLocation       string               `json:"dropLocation"`
	PickupTime         string               `json:"pickupTime"`
	DropTime           string               `json:"dropTime"`
	CreatedBy          int                  `json:"createdBy"`
	Workers            []int                `json:"workers"`
	MaterialQuantities []MaterialQuantity   `json:"materialQuantities"`
	ToolQuantities     []ToolQuantity       `json:"toolQuantities"`
}

func decodeTransportData(raw datatypes.JSON) (*TransportData, error) {
	if len(raw) == 0 {
		return nil, errors.New("transport task requires additionalData")
	}
	var data TransportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid transport payload: %w", err)
	}
	return &data, nil
}

// createTransport expands a TRANSPORT task into a FleetTask plus its child
// rows, all on the caller's transaction. Returns the new FleetTask id.
func (s *Service) createTransport(tx *gorm.DB, taskID int, raw datatypes.JSON) (int, error) {
	data, err := decodeTransportData(raw)
	if err != nil {
		return 0, err
	}

	id, err := identity.NextSequenceID(tx, &models.FleetTask{})
	if err != nil {
		return 0, err
	}

	fleetTask := models.FleetTask{
		ID:                id,
		TaskID:            &taskID,
		CompanyID:         data.CompanyID,
		DriverID:          data.DriverID,
		VehicleID:         data.VehicleID,
		ProjectID:         data.ProjectID,
		TransportType:     data.TransportType,
		TaskDate:          time.Now(),
		PickupLocation:    data.PickupLocation,
		DropLocation:      data.DropLocation,
		PickupTime:        data.PickupTime,
		DropTime:          data.DropTime,
		PlannedPickupTime: data.PickupTime,
		PlannedDropTime:   data.DropTime,
		Status:            models.FleetTaskPlanned,
		CreatedBy:         data.CreatedBy,
	}
	if err := tx.Create(&fleetTask).Error; err != nil {
		return 0, err
	}

	if err := s.insertTransportDetails(tx, fleetTask.ID, data); err != nil {
		return 0, err
	}

	s.log.Info("fleet task created for transport task",
		zap.Int("fleetTaskId", fleetTask.ID),
		zap.Int("taskId", taskID))
	return fleetTask.ID, nil
}

// updateTransport re-syncs the FleetTask for a task. Tasks that have no fleet
// task yet (created before the handler existed, or whose type changed into
// TRANSPORT) fall back to the create path. Otherwise the mutable fields are
// overwritten and the child rows are wiped across all three collections and
// re-inserted from the payload; there is no diff against the old rows.
func (s *Service) updateTransport(tx *gorm.DB, taskID int, raw datatypes.JSON) (int, error) {
	data, err := decodeTransportData(raw)
	if err != nil {
		return 0, err
	}

	var fleetTask models.FleetTask
	if err := tx.Where("task_id = ?", taskID).First(&fleetTask).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.createTransport(tx, taskID, raw)
		}
		return 0, err
	}

	if err := tx.Model(&models.FleetTask{}).Where("id = ?", fleetTask.ID).Updates(map[string]any{
		"driver_id":           data.DriverID,
		"vehicle_id":          data.VehicleID,
		"company_id":          data.CompanyID,
		"project_id":          data.ProjectID,
		"transport_type":      data.TransportType,
		"pickup_location":     data.PickupLocation,
		"drop_location":       data.DropLocation,
		"pickup_time":         data.PickupTime,
		"drop_time":           data.DropTime,
		"planned_pickup_time": data.PickupTime,
		"planned_drop_time":   data.DropTime,
		"updated_at":          time.Now(),
	}).Error; err != nil {
		return 0, err
	}

	// Unconditional wipe: all three child collections, not just the one
	// matching the current transport type.
	for _, child := range []any{
		&models.FleetTaskPassenger{},
		&models.FleetTaskMaterial{},
		&models.FleetTaskTool{},
	} {
		if err := tx.Where("fleet_task_id = ?", fleetTask.ID).Delete(child).Error; err != nil {
			return 0, err
		}
	}

	if err := s.insertTransportDetails(tx, fleetTask.ID, data); err != nil {
		return 0, err
	}

	s.log.Info("fleet task re-synced for transport task",
		zap.Int("fleetTaskId", fleetTask.ID),
		zap.Int("taskId", taskID))
	return fleetTask.ID, nil
}

// insertTransportDetails inserts the child rows selected by transportType.
// An unknown type or an empty array inserts nothing and is not an error.
func (s *Service) insertTransportDetails(tx *gorm.DB, fleetTaskID int, data *TransportData) error {
	switch data.TransportType {
	case models.TransportWorker:
		if len(data.Workers) == 0 {
			return nil
		}
		passengers := make([]models.FleetTaskPassenger, 0, len(data.Workers))
		for _, employeeID := range data.Workers {
			passengers = append(passengers, models.FleetTaskPassenger{
				FleetTaskID:      fleetTaskID,
				WorkerEmployeeID: employeeID,
				Status:           models.PassengerPlanned,
			})
		}
		return tx.Create(&passengers).Error

	case models.TransportMaterial:
		if len(data.MaterialQuantities) == 0 {
			return nil
		}
		materials := make([]models.FleetTaskMaterial, 0, len(data.MaterialQuantities))
		for _, m := range data.MaterialQuantities {
			materials = append(materials, models.FleetTaskMaterial{
				FleetTaskID: fleetTaskID,
				MaterialID:  m.MaterialID,
				Quantity:    m.Quantity,
			})
		}
		return tx.Create(&materials).Error

	case models.TransportTool:
		if len(data.ToolQuantities) == 0 {
			return nil
		}
		tools := make([]models.FleetTaskTool, 0, len(data.ToolQuantities))
		for _, t := range data.ToolQuantities {
			tools = append(tools, models.FleetTaskTool{
				FleetTaskID: fleetTaskID,
				ToolID:      t.ToolID,
				Quantity:    t.Quantity,
			})
		}
		return tx.Create(&tools).Error
	}
	return nil
}
