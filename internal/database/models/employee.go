package models

import "github.com/google/uuid"

// Employee belongs to exactly one organization for its lifetime
type Employee struct {
	BaseModel
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name           string    `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	Department     string    `json:"department" gorm:"size:100" validate:"max=100"`

	// Relationships
	Organization      *Organization      `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	AttendanceRecords []AttendanceRecord `json:"attendance_records,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Employee
func (Employee) TableName() string {
	return "employees"
}
