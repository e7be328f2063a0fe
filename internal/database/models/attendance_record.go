package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord holds at most one row per employee per calendar day. The
// unique index on (employee_id, date) is the arbiter for concurrent check-ins:
// the store rejects the second insert and the engine reports a conflict.
type AttendanceRecord struct {
	BaseModel
	EmployeeID uuid.UUID  `json:"employee_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_attendance_employee_date" validate:"required"`
	Date       time.Time  `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date" validate:"required"`
	CheckIn    *time.Time `json:"check_in" gorm:"type:timestamptz"`
	CheckOut   *time.Time `json:"check_out" gorm:"type:timestamptz"`
	IsAbsent   bool       `json:"is_absent" gorm:"not null;default:false"`

	// Relationships
	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

// TableName returns the table name for AttendanceRecord
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// DateOf truncates a timestamp to its calendar day in UTC, the canonical form
// of the daily record key.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
