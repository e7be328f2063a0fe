package repository

import (
	"time"

	"attendance-tracker-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetByName(name string) (*models.Organization, error)
	GetAll(limit, offset int) ([]models.Organization, int64, error)
	Update(org *models.Organization) error
	Delete(id uuid.UUID) error
	GetWithEmployees(id uuid.UUID) (*models.Organization, error)
}

// EmployeeRepositoryInterface defines the interface for employee repository operations
type EmployeeRepositoryInterface interface {
	Create(employee *models.Employee) error
	GetByID(id uuid.UUID) (*models.Employee, error)
	GetByEmail(email string) (*models.Employee, error)
	List(orgID *uuid.UUID, limit, offset int) ([]models.Employee, int64, error)
	AllByOrganization(orgID *uuid.UUID) ([]models.Employee, error)
	Update(employee *models.Employee) error
	Delete(id uuid.UUID) error
}

// ProfileRepositoryInterface defines the interface for profile repository operations
type ProfileRepositoryInterface interface {
	Create(profile *models.Profile) error
	GetByID(id uuid.UUID) (*models.Profile, error)
	GetByEmail(email string) (*models.Profile, error)
	GetByEmployeeID(employeeID uuid.UUID) (*models.Profile, error)
	Update(profile *models.Profile) error
	Delete(id uuid.UUID) error
}

// AttendanceFilter narrows attendance listing queries
type AttendanceFilter struct {
	From           *time.Time
	To             *time.Time
	EmployeeID     *uuid.UUID
	OrganizationID *uuid.UUID
}

// AttendanceRepositoryInterface defines the interface for attendance repository operations
type AttendanceRepositoryInterface interface {
	Create(record *models.AttendanceRecord) error
	GetByEmployeeAndDate(employeeID uuid.UUID, date time.Time) (*models.AttendanceRecord, error)
	Update(record *models.AttendanceRecord) error
	List(filter AttendanceFilter, limit, offset int) ([]models.AttendanceRecord, int64, error)
	ListByDate(date time.Time, orgID *uuid.UUID) ([]models.AttendanceRecord, error)
}
