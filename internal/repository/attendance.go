package repository

import (
	"errors"
	"time"

	"attendance-tracker-backend/internal/database/models"
	apperrors "attendance-tracker-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create inserts a new attendance record. A unique-index violation on
// (employee_id, date) means a concurrent writer won the daily slot; it is
// reported as a conflict so racing check-ins fail the same way sequential
// duplicates do.
func (r *AttendanceRepository) Create(record *models.AttendanceRecord) error {
	err := r.db.Create(record).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrAttendanceExists
	}
	return err
}

// GetByEmployeeAndDate retrieves the record for the daily key
func (r *AttendanceRepository) GetByEmployeeAndDate(employeeID uuid.UUID, date time.Time) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.First(&record, "employee_id = ? AND date = ?", employeeID, models.DateOf(date)).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Update updates an attendance record
func (r *AttendanceRepository) Update(record *models.AttendanceRecord) error {
	return r.db.Save(record).Error
}

// List retrieves attendance records matching the filter with pagination,
// newest date first. An organization filter joins through employees.
func (r *AttendanceRepository) List(filter AttendanceFilter, limit, offset int) ([]models.AttendanceRecord, int64, error) {
	var records []models.AttendanceRecord
	var total int64

	query := r.db.Model(&models.AttendanceRecord{})
	if filter.EmployeeID != nil {
		query = query.Where("attendance_records.employee_id = ?", *filter.EmployeeID)
	}
	if filter.OrganizationID != nil {
		query = query.
			Joins("JOIN employees ON employees.id = attendance_records.employee_id").
			Where("employees.organization_id = ?", *filter.OrganizationID)
	}
	if filter.From != nil {
		query = query.Where("attendance_records.date >= ?", models.DateOf(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("attendance_records.date <= ?", models.DateOf(*filter.To))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("attendance_records.date desc").Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListByDate retrieves all records for one calendar day, optionally narrowed
// to an organization, for the daily summary and roster
func (r *AttendanceRepository) ListByDate(date time.Time, orgID *uuid.UUID) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	query := r.db.Model(&models.AttendanceRecord{}).Where("attendance_records.date = ?", models.DateOf(date))
	if orgID != nil {
		query = query.
			Joins("JOIN employees ON employees.id = attendance_records.employee_id").
			Where("employees.organization_id = ?", *orgID)
	}
	err := query.Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
