package models

import "time"

// FleetAlert is an operational alert raised against a company or one of its
// vehicles (breakdown, service due, document expiry).
type FleetAlert struct {
	ID           int        `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CompanyID    int        `json:"companyId" gorm:"column:company_id;index;not null"`
	VehicleID    int        `json:"vehicleId" gorm:"column:vehicle_id"`
	AlertType    string     `json:"alertType" gorm:"column:alert_type"`
	AlertMessage string     `json:"alertMessage" gorm:"column:alert_message"`
	AlertDate    time.Time  `json:"alertDate" gorm:"column:alert_date"`
	ResolvedAt   *time.Time `json:"resolvedAt" gorm:"column:resolved_at"`
	CreatedBy    int        `json:"createdBy" gorm:"column:created_by"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// TableName specifies the table name for FleetAlert Model
func (FleetAlert) TableName() string {
	return "fleet_alerts"
}
