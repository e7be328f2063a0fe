package repository

import (
	"attendance-tracker-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a new profile
func (r *ProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByEmail retrieves a profile by email
func (r *ProfileRepository) GetByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByEmployeeID retrieves the profile linked to an employee
func (r *ProfileRepository) GetByEmployeeID(employeeID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "employee_id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update updates a profile
func (r *ProfileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// Delete deletes a profile
func (r *ProfileRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Profile{}, "id = ?", id).Error
}
