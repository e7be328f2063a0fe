package models

// Organization represents the root entity for multi-tenancy
type Organization struct {
	BaseModel
	Name     string `json:"name" gorm:"uniqueIndex;not null;size:100" validate:"required,min=1,max=100"`
	Location string `json:"location" gorm:"size:200" validate:"max=200"`

	// Relationships
	Employees []Employee `json:"employees,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Profiles  []Profile  `json:"profiles,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}
