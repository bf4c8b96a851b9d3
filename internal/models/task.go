package models

import (
	"time"

	"gorm.io/datatypes"
)

// TaskType is the discriminator that decides which satellite handler (if any)
// expands the task's additionalData into type-specific records.
type TaskType string

const (
	TaskTypeTransport   TaskType = "TRANSPORT"
	TaskTypeWork        TaskType = "WORK"
	TaskTypeMaterial    TaskType = "MATERIAL"
	TaskTypeTool        TaskType = "TOOL"
	TaskTypeInspection  TaskType = "INSPECTION"
	TaskTypeMaintenance TaskType = "MAINTENANCE"
	TaskTypeAdmin       TaskType = "ADMIN"
	TaskTypeTraining    TaskType = "TRAINING"
	TaskTypeOther       TaskType = "OTHER"
)

// TaskTypes lists every accepted task type, for request validation.
var TaskTypes = []TaskType{
	TaskTypeTransport,
	TaskTypeWork,
	TaskTypeMaterial,
	TaskTypeTool,
	TaskTypeInspection,
	TaskTypeMaintenance,
	TaskTypeAdmin,
	TaskTypeTraining,
	TaskTypeOther,
}

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	for _, known := range TaskTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Task is the generic, polymorphic unit of work. AdditionalData carries the
// type-shaped payload; only the TRANSPORT shape is consumed by any handler.
// Status is deliberately a free string since transitions are a UI concern.
type Task struct {
	ID              int            `json:"id" gorm:"primaryKey;autoIncrement:false"`
	TaskType        TaskType       `json:"taskType" gorm:"column:task_type;not null"`
	TaskName        string         `json:"taskName" gorm:"column:task_name"`
	Description     string         `json:"description"`
	StartDate       string         `json:"startDate" gorm:"column:start_date"`
	EndDate         string         `json:"endDate" gorm:"column:end_date"`
	Status          string         `json:"status"`
	AdditionalData  datatypes.JSON `json:"additionalData" gorm:"column:additional_data"`
	TransportTaskID *int           `json:"transportTaskId" gorm:"column:transport_task_id"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}
