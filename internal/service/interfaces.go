package service

import (
	"time"

	"attendance-tracker-backend/internal/authz"
	"attendance-tracker-backend/internal/database/models"
	"attendance-tracker-backend/internal/repository"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// OrganizationServiceInterface defines the interface for organization service operations
type OrganizationServiceInterface interface {
	Create(req *CreateOrganizationRequest) (*OrganizationResponse, error)
	GetByID(id uuid.UUID) (*OrganizationResponse, error)
	GetAll(page, pageSize int) (*OrganizationListResponse, error)
	Update(id uuid.UUID, req *UpdateOrganizationRequest) (*OrganizationResponse, error)
	Delete(id uuid.UUID) error
}

// EmployeeServiceInterface defines the interface for employee service operations
type EmployeeServiceInterface interface {
	Create(scope authz.Scope, req *CreateEmployeeRequest) (*EmployeeResponse, error)
	GetByID(scope authz.Scope, id uuid.UUID) (*EmployeeResponse, error)
	List(scope authz.Scope, page, pageSize int) (*EmployeeListResponse, error)
	Update(scope authz.Scope, id uuid.UUID, req *UpdateEmployeeRequest) (*EmployeeResponse, error)
	Delete(scope authz.Scope, id uuid.UUID) error
}

// ProfileServiceInterface defines the interface for profile service operations
type ProfileServiceInterface interface {
	Register(req *RegisterRequest) (*models.Profile, error)
	Login(req *LoginRequest) (*models.Profile, error)
	AssignManager(req *AssignManagerRequest) (*ProfileResponse, error)
}

// AttendanceServiceInterface defines the interface for the attendance state engine
type AttendanceServiceInterface interface {
	CheckIn(scope authz.Scope, employeeID uuid.UUID, timestamp *time.Time) (*AttendanceResponse, error)
	CheckOut(scope authz.Scope, employeeID uuid.UUID, timestamp *time.Time) (*AttendanceResponse, error)
	MarkAbsent(scope authz.Scope, employeeID uuid.UUID, date *time.Time) (*AttendanceResponse, error)
	List(scope authz.Scope, filter repository.AttendanceFilter, page, pageSize int) (*AttendanceListResponse, error)
	DailySummary(scope authz.Scope, date time.Time) (*DailySummaryResponse, error)
	DailyRoster(scope authz.Scope, date time.Time) (*DailyRosterResponse, error)
}
