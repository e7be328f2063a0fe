package testutils

import (
	"time"

	"attendance-tracker-backend/internal/database/models"

	"github.com/google/uuid"
)

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values
func (f *OrganizationFactory) Create() *models.Organization {
	id := uuid.New()
	return &models.Organization{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:     "test-org-" + id.String()[:8],
		Location: "Test City",
	}
}

// WithName sets a custom name for the organization
func (f *OrganizationFactory) WithName(name string) *models.Organization {
	org := f.Create()
	org.Name = name
	return org
}

// EmployeeFactory provides methods to create test Employee data
type EmployeeFactory struct{}

// NewEmployeeFactory creates a new EmployeeFactory
func NewEmployeeFactory() *EmployeeFactory {
	return &EmployeeFactory{}
}

// Create creates a test Employee with default values. The email embeds part
// of the UUID so unique constraints hold across factory calls.
func (f *EmployeeFactory) Create() *models.Employee {
	id := uuid.New()
	return &models.Employee{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		Name:           "Jane Doe",
		Email:          "jane." + id.String()[:8] + "@test.com",
		Department:     "Engineering",
	}
}

// WithOrganization sets the organization ID for the employee
func (f *EmployeeFactory) WithOrganization(orgID uuid.UUID) *models.Employee {
	employee := f.Create()
	employee.OrganizationID = orgID
	return employee
}

// WithEmail sets a custom email for the employee
func (f *EmployeeFactory) WithEmail(email string) *models.Employee {
	employee := f.Create()
	employee.Email = email
	return employee
}

// ProfileFactory provides methods to create test Profile data
type ProfileFactory struct{}

// NewProfileFactory creates a new ProfileFactory
func NewProfileFactory() *ProfileFactory {
	return &ProfileFactory{}
}

// Create creates a test Profile with default values
func (f *ProfileFactory) Create() *models.Profile {
	id := uuid.New()
	return &models.Profile{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Email:        "user." + id.String()[:8] + "@test.com",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Role:         models.RoleEmployee,
	}
}

// WithRole sets the role for the profile
func (f *ProfileFactory) WithRole(role models.Role) *models.Profile {
	profile := f.Create()
	profile.Role = role
	return profile
}

// WithEmployee links the profile to an employee and its organization
func (f *ProfileFactory) WithEmployee(employee *models.Employee) *models.Profile {
	profile := f.Create()
	profile.Email = employee.Email
	profile.EmployeeID = &employee.ID
	orgID := employee.OrganizationID
	profile.OrganizationID = &orgID
	return profile
}

// AttendanceFactory provides methods to create test AttendanceRecord data
type AttendanceFactory struct{}

// NewAttendanceFactory creates a new AttendanceFactory
func NewAttendanceFactory() *AttendanceFactory {
	return &AttendanceFactory{}
}

// Create creates a checked-in test AttendanceRecord for today
func (f *AttendanceFactory) Create() *models.AttendanceRecord {
	now := time.Now().UTC()
	checkIn := now.Add(-2 * time.Hour)
	return &models.AttendanceRecord{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		EmployeeID: uuid.New(),
		Date:       models.DateOf(now),
		CheckIn:    &checkIn,
	}
}

// WithEmployee sets the employee ID for the record
func (f *AttendanceFactory) WithEmployee(employeeID uuid.UUID) *models.AttendanceRecord {
	record := f.Create()
	record.EmployeeID = employeeID
	return record
}

// CheckedOut creates a completed record with both punches set
func (f *AttendanceFactory) CheckedOut(employeeID uuid.UUID) *models.AttendanceRecord {
	record := f.Create()
	record.EmployeeID = employeeID
	checkOut := record.CheckIn.Add(8 * time.Hour)
	record.CheckOut = &checkOut
	return record
}

// Absent creates an absence record for the given employee and date
func (f *AttendanceFactory) Absent(employeeID uuid.UUID, date time.Time) *models.AttendanceRecord {
	record := f.Create()
	record.EmployeeID = employeeID
	record.Date = models.DateOf(date)
	record.CheckIn = nil
	record.IsAbsent = true
	return record
}

// FactorySet provides access to all factories
type FactorySet struct {
	Organization *OrganizationFactory
	Employee     *EmployeeFactory
	Profile      *ProfileFactory
	Attendance   *AttendanceFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Organization: NewOrganizationFactory(),
		Employee:     NewEmployeeFactory(),
		Profile:      NewProfileFactory(),
		Attendance:   NewAttendanceFactory(),
	}
}
