package models

import "github.com/google/uuid"

// Profile is the stored identity behind a bearer credential. Admin profiles
// have no organization; manager and employee profiles carry one once fully
// provisioned. A profile links to at most one employee row.
type Profile struct {
	BaseModel
	Email          string     `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash   string     `json:"-" gorm:"size:100"`
	Role           Role       `json:"role" gorm:"type:varchar(20);not null;default:'employee'" validate:"required"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	EmployeeID     *uuid.UUID `json:"employee_id,omitempty" gorm:"type:uuid;uniqueIndex"`

	// Relationships
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Employee     *Employee     `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

// TableName returns the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
