package repository

import (
	"attendance-tracker-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRepository handles database operations for employees
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create creates a new employee
func (r *EmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetByEmail retrieves an employee by email
func (r *EmployeeRepository) GetByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// List retrieves employees with pagination, optionally narrowed to one
// organization. A nil orgID lists across all organizations.
func (r *EmployeeRepository) List(orgID *uuid.UUID, limit, offset int) ([]models.Employee, int64, error) {
	var employees []models.Employee
	var total int64

	query := r.db.Model(&models.Employee{})
	if orgID != nil {
		query = query.Where("organization_id = ?", *orgID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("name asc").Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// AllByOrganization retrieves every employee in scope without pagination,
// used by the daily summary and roster
func (r *EmployeeRepository) AllByOrganization(orgID *uuid.UUID) ([]models.Employee, error) {
	var employees []models.Employee
	query := r.db.Model(&models.Employee{})
	if orgID != nil {
		query = query.Where("organization_id = ?", *orgID)
	}
	err := query.Order("name asc").Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// Update updates an employee
func (r *EmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

// Delete deletes an employee; attendance records cascade at the store level
func (r *EmployeeRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Employee{}, "id = ?", id).Error
}
