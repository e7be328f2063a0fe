package service

import (
	"errors"
	"fmt"

	"attendance-tracker-backend/internal/authz"
	"attendance-tracker-backend/internal/database/models"
	apperrors "attendance-tracker-backend/internal/errors"
	"attendance-tracker-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeService handles business logic for employees
type EmployeeService struct {
	repo      repository.EmployeeRepositoryInterface
	orgRepo   repository.OrganizationRepositoryInterface
	validator *validator.Validate
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(repo repository.EmployeeRepositoryInterface, orgRepo repository.OrganizationRepositoryInterface, validator *validator.Validate) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		orgRepo:   orgRepo,
		validator: validator,
	}
}

// CreateEmployeeRequest represents the request to create an employee
type CreateEmployeeRequest struct {
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	Name           string    `json:"name" validate:"required,min=1,max=100"`
	Email          string    `json:"email" validate:"required,email,max=255"`
	Department     string    `json:"department,omitempty" validate:"max=100"`
}

// UpdateEmployeeRequest represents the request to update an employee. The
// organization is not updatable: an employee belongs to one organization for
// its lifetime.
type UpdateEmployeeRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Department string `json:"department,omitempty" validate:"max=100"`
}

// EmployeeResponse represents the response for employee operations
type EmployeeResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Department     string    `json:"department"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
}

// EmployeeListResponse represents a paginated list of employees
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

// Create creates a new employee inside the caller's scope
func (s *EmployeeService) Create(scope authz.Scope, req *CreateEmployeeRequest) (*EmployeeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if scope.OrganizationID != nil && req.OrganizationID != *scope.OrganizationID {
		return nil, apperrors.ErrOrganizationScope
	}

	if _, err := s.orgRepo.GetByID(req.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing employee by email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrEmployeeExists
	}

	employee := &models.Employee{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Email:          req.Email,
		Department:     req.Department,
	}

	if err := s.repo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return s.toResponse(employee), nil
}

// GetByID retrieves an employee by ID within the caller's scope
func (s *EmployeeService) GetByID(scope authz.Scope, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.getInScope(scope, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(employee), nil
}

// List retrieves employees in scope with pagination
func (s *EmployeeService) List(scope authz.Scope, page, pageSize int) (*EmployeeListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	employees, total, err := s.repo.List(scope.OrganizationID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]EmployeeResponse, len(employees))
	for i, employee := range employees {
		responses[i] = *s.toResponse(&employee)
	}

	return &EmployeeListResponse{
		Employees: responses,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// Update updates an employee within the caller's scope
func (s *EmployeeService) Update(scope authz.Scope, id uuid.UUID, req *UpdateEmployeeRequest) (*EmployeeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	employee, err := s.getInScope(scope, id)
	if err != nil {
		return nil, err
	}

	if req.Email != employee.Email {
		existing, err := s.repo.GetByEmail(req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing employee by email: %w", err)
		}
		if existing != nil {
			return nil, apperrors.ErrEmployeeExists
		}
	}

	employee.Name = req.Name
	employee.Email = req.Email
	employee.Department = req.Department

	if err := s.repo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return s.toResponse(employee), nil
}

// Delete deletes an employee within the caller's scope; attendance records
// cascade at the store level
func (s *EmployeeService) Delete(scope authz.Scope, id uuid.UUID) error {
	if _, err := s.getInScope(scope, id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

func (s *EmployeeService) getInScope(scope authz.Scope, id uuid.UUID) (*models.Employee, error) {
	employee, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if scope.OrganizationID != nil && employee.OrganizationID != *scope.OrganizationID {
		return nil, apperrors.ErrOrganizationScope
	}

	return employee, nil
}

func (s *EmployeeService) toResponse(employee *models.Employee) *EmployeeResponse {
	return employeeToResponse(employee)
}
