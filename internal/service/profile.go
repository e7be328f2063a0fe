package service

import (
	"errors"
	"fmt"

	"attendance-tracker-backend/internal/auth"
	"attendance-tracker-backend/internal/database/models"
	apperrors "attendance-tracker-backend/internal/errors"
	"attendance-tracker-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileService handles business logic for stored identities
type ProfileService struct {
	repo         repository.ProfileRepositoryInterface
	employeeRepo repository.EmployeeRepositoryInterface
	orgRepo      repository.OrganizationRepositoryInterface
	validator    *validator.Validate
}

// NewProfileService creates a new profile service
func NewProfileService(
	repo repository.ProfileRepositoryInterface,
	employeeRepo repository.EmployeeRepositoryInterface,
	orgRepo repository.OrganizationRepositoryInterface,
	validator *validator.Validate,
) *ProfileService {
	return &ProfileService{
		repo:         repo,
		employeeRepo: employeeRepo,
		orgRepo:      orgRepo,
		validator:    validator,
	}
}

// RegisterRequest represents the request to register a new identity
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a credential check request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AssignManagerRequest promotes a profile to manager of an organization
type AssignManagerRequest struct {
	UserID         uuid.UUID `json:"user_id" validate:"required"`
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
}

// ProfileResponse represents the response for profile operations
type ProfileResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	EmployeeID     *uuid.UUID `json:"employee_id,omitempty"`
}

// Register creates an employee-role profile. When an employee row with the
// same email already exists, the new profile is linked to it and inherits its
// organization.
func (s *ProfileService) Register(req *RegisterRequest) (*models.Profile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing profile by email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrProfileExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleEmployee,
	}

	employee, err := s.employeeRepo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up employee by email: %w", err)
	}
	if employee != nil {
		profile.EmployeeID = &employee.ID
		orgID := employee.OrganizationID
		profile.OrganizationID = &orgID
	}

	if err := s.repo.Create(profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// Login verifies the email/password credential and returns the stored profile
func (s *ProfileService) Login(req *LoginRequest) (*models.Profile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	profile, err := s.repo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidLogin
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.PasswordHash == "" || !auth.CheckPassword(profile.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidLogin
	}

	return profile, nil
}

// AssignManager sets a profile's role to manager and binds it to an
// organization. This is the only path that mutates role or organization.
func (s *ProfileService) AssignManager(req *AssignManagerRequest) (*ProfileResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	profile, err := s.repo.GetByID(req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if _, err := s.orgRepo.GetByID(req.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	orgID := req.OrganizationID
	profile.Role = models.RoleManager
	profile.OrganizationID = &orgID

	if err := s.repo.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.toResponse(profile), nil
}

func (s *ProfileService) toResponse(profile *models.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:             profile.ID,
		Email:          profile.Email,
		Role:           string(profile.Role),
		OrganizationID: profile.OrganizationID,
		EmployeeID:     profile.EmployeeID,
	}
}
