package models

import (
	"time"
)

// TransportType selects which child collection a fleet task owns.
type TransportType string

const (
	TransportWorker   TransportType = "WORKER_TRANSPORT"
	TransportMaterial TransportType = "MATERIAL_TRANSPORT"
	TransportTool     TransportType = "TOOL_TRANSPORT"
)

// FleetTaskStatus values follow the PLANNED/ONGOING/COMPLETED/CANCELLED
// convention; the backend does not enforce a transition graph.
type FleetTaskStatus string

const (
	FleetTaskPlanned   FleetTaskStatus = "PLANNED"
	FleetTaskOngoing   FleetTaskStatus = "ONGOING"
	FleetTaskCompleted FleetTaskStatus = "COMPLETED"
	FleetTaskCancelled FleetTaskStatus = "CANCELLED"
)

// FleetTask is the transport satellite aggregate, one-to-one with a Task of
// type TRANSPORT. TaskID is nullable because fleet tasks can also be created
// directly through the fleet task endpoints, without an owning Task.
type FleetTask struct {
	ID                 int             `json:"id" gorm:"primaryKey;autoIncrement:false"`
	TaskID             *int            `json:"taskId" gorm:"column:task_id;uniqueIndex"`
	CompanyID          int             `json:"companyId" gorm:"column:company_id;index"`
	DriverID           int             `json:"driverId" gorm:"column:driver_id"`
	VehicleID          int             `json:"vehicleId" gorm:"column:vehicle_id"`
	ProjectID          int             `json:"projectId" gorm:"column:project_id"`
	TransportType      TransportType   `json:"transportType" gorm:"column:transport_type"`
	TaskDate           time.Time       `json:"taskDate" gorm:"column:task_date"`
	PickupLocation     string          `json:"pickupLocation" gorm:"column:pickup_location"`
	PickupAddress      string          `json:"pickupAddress" gorm:"column:pickup_address"`
	DropLocation       string          `json:"dropLocation" gorm:"column:drop_location"`
	DropAddress        string          `json:"dropAddress" gorm:"column:drop_address"`
	PickupTime         string          `json:"pickupTime" gorm:"column:pickup_time"`
	DropTime           string          `json:"dropTime" gorm:"column:drop_time"`
	PlannedPickupTime  string          `json:"plannedPickupTime" gorm:"column:planned_pickup_time"`
	PlannedDropTime    string          `json:"plannedDropTime" gorm:"column:planned_drop_time"`
	ExpectedPassengers int             `json:"expectedPassengers" gorm:"column:expected_passengers"`
	Status             FleetTaskStatus `json:"status" gorm:"default:'PLANNED'"`
	Notes              string          `json:"notes"`
	CreatedBy          int             `json:"createdBy" gorm:"column:created_by"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// TableName specifies the table name for FleetTask Model
func (FleetTask) TableName() string {
	return "fleet_tasks"
}

// PassengerStatus tracks a passenger through a trip.
type PassengerStatus string

const (
	PassengerPlanned PassengerStatus = "PLANNED"
	PassengerPicked  PassengerStatus = "PICKED"
	PassengerDropped PassengerStatus = "DROPPED"
	PassengerAbsent  PassengerStatus = "ABSENT"
)

// FleetTaskPassenger is one worker seat on a WORKER_TRANSPORT fleet task.
// Rows are wholly owned by the fleet task: the transport handler recreates
// them from the payload on every update, so confirmation state only survives
// as long as no task update happens.
type FleetTaskPassenger struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	FleetTaskID       int             `json:"fleetTaskId" gorm:"column:fleet_task_id;index;not null"`
	WorkerEmployeeID  int             `json:"workerEmployeeId" gorm:"column:worker_employee_id;not null"`
	Status            PassengerStatus `json:"status" gorm:"default:'PLANNED'"`
	PickupConfirmedAt *time.Time      `json:"pickupConfirmedAt" gorm:"column:pickup_confirmed_at"`
	DropConfirmedAt   *time.Time      `json:"dropConfirmedAt" gorm:"column:drop_confirmed_at"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// TableName specifies the table name for FleetTaskPassenger Model
func (FleetTaskPassenger) TableName() string {
	return "fleet_task_passengers"
}

// FleetTaskMaterial is one material line on a MATERIAL_TRANSPORT fleet task.
type FleetTaskMaterial struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FleetTaskID int       `json:"fleetTaskId" gorm:"column:fleet_task_id;index;not null"`
	MaterialID  int       `json:"materialId" gorm:"column:material_id;not null"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName specifies the table name for FleetTaskMaterial Model
func (FleetTaskMaterial) TableName() string {
	return "fleet_task_materials"
}

// FleetTaskTool is one tool line on a TOOL_TRANSPORT fleet task.
type FleetTaskTool struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FleetTaskID int       `json:"fleetTaskId" gorm:"column:fleet_task_id;index;not null"`
	ToolID      int       `json:"toolId" gorm:"column:tool_id;not null"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName specifies the table name for FleetTaskTool Model
func (FleetTaskTool) TableName() string {
	return "fleet_task_tools"
}
