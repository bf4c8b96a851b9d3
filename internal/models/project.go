package models

import "time"

// Project groups fleet tasks under a client engagement.
type Project struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CompanyID int       `json:"companyId" gorm:"column:company_id;index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Status    string    `json:"status" gorm:"default:'ACTIVE'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
