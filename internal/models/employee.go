package models

import "time"

// EmployeeStatus represents the employment status of an employee
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "ACTIVE"
	EmployeeInactive EmployeeStatus = "INACTIVE"
)

// Employee represents a company worker; drivers and transport passengers
// both reference employees by id.
type Employee struct {
	ID           int            `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CompanyID    int            `json:"companyId" gorm:"column:company_id;index;not null"`
	FullName     string         `json:"fullName" gorm:"column:full_name;not null"`
	EmployeeCode string         `json:"employeeCode" gorm:"column:employee_code"`
	JobTitle     string         `json:"jobTitle" gorm:"column:job_title"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Status       EmployeeStatus `json:"status" gorm:"default:'ACTIVE'"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// TableName specifies the table name for Employee Model
func (Employee) TableName() string {
	return "employees"
}
