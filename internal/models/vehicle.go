package models

import "time"

// FleetVehicle is a vehicle available for transport tasks.
type FleetVehicle struct {
	ID             int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CompanyID      int       `json:"companyId" gorm:"column:company_id;index;not null"`
	VehicleCode    string    `json:"vehicleCode" gorm:"column:vehicle_code"`
	RegistrationNo string    `json:"registrationNo" gorm:"column:registration_no"`
	Capacity       int       `json:"capacity"`
	Status         string    `json:"status" gorm:"default:'ACTIVE'"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName specifies the table name for FleetVehicle Model
func (FleetVehicle) TableName() string {
	return "fleet_vehicles"
}
