package models

import "time"

// Company is a tenant: every fleet entity hangs off a company.
type Company struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name       string    `json:"name" gorm:"not null"`
	TenantCode string    `json:"tenantCode" gorm:"column:tenant_code;unique;not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Company Model
func (Company) TableName() string {
	return "companies"
}
