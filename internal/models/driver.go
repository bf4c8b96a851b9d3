package models

import "time"

// DriverStatus represents whether a driver assignment is current
type DriverStatus string

const (
	DriverActive   DriverStatus = "ACTIVE"
	DriverInactive DriverStatus = "INACTIVE"
)

// Driver is a driving assignment for an employee. The employee name, code and
// job title are denormalized from the employee at creation time so driver
// lists render without joins.
type Driver struct {
	ID            int          `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CompanyID     int          `json:"companyId" gorm:"column:company_id;index;not null"`
	EmployeeID    int          `json:"employeeId" gorm:"column:employee_id;index;not null"`
	EmployeeName  string       `json:"employeeName" gorm:"column:employee_name"`
	EmployeeCode  string       `json:"employeeCode" gorm:"column:employee_code"`
	JobTitle      string       `json:"jobTitle" gorm:"column:job_title"`
	LicenseNo     string       `json:"licenseNo" gorm:"column:license_no;not null"`
	LicenseExpiry string       `json:"licenseExpiry" gorm:"column:license_expiry"`
	VehicleID     int          `json:"vehicleId" gorm:"column:vehicle_id"`
	Status        DriverStatus `json:"status" gorm:"default:'ACTIVE'"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// TableName specifies the table name for Driver Model
func (Driver) TableName() string {
	return "drivers"
}
