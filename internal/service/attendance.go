package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"attendance-tracker-backend/internal/authz"
	"attendance-tracker-backend/internal/database/models"
	apperrors "attendance-tracker-backend/internal/errors"
	"attendance-tracker-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceService enforces the daily check-in/check-out lifecycle per
// employee and computes presence summaries. States per (employee, date):
// NoRecord -> CheckedIn -> CheckedOut, with MarkedAbsent terminal from
// NoRecord. Records are append-only per daily key; a record is mutated at
// most once, by the check-out.
type AttendanceService struct {
	repo         repository.AttendanceRepositoryInterface
	employeeRepo repository.EmployeeRepositoryInterface
	now          func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(repo repository.AttendanceRepositoryInterface, employeeRepo repository.EmployeeRepositoryInterface) *AttendanceService {
	return &AttendanceService{
		repo:         repo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// WithClock overrides the engine's clock; used by tests
func (s *AttendanceService) WithClock(now func() time.Time) *AttendanceService {
	s.now = now
	return s
}

// AttendanceResponse represents the response for attendance operations
type AttendanceResponse struct {
	ID         uuid.UUID  `json:"id"`
	EmployeeID uuid.UUID  `json:"employee_id"`
	Date       string     `json:"date"`
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
	IsAbsent   bool       `json:"is_absent"`
}

// AttendanceListResponse represents a paginated list of attendance records
type AttendanceListResponse struct {
	Records  []AttendanceResponse `json:"records"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// DailySummaryResponse is the per-day presence aggregate for a scope
type DailySummaryResponse struct {
	Date           string `json:"date"`
	TotalEmployees int    `json:"total_employees"`
	PresentCount   int    `json:"present_count"`
	AbsentCount    int    `json:"absent_count"`
	Percentage     int    `json:"percentage"`
}

// RosterEntry pairs an employee with their resolved record for the day;
// Record is nil for employees with no record
type RosterEntry struct {
	Employee EmployeeResponse    `json:"employee"`
	Record   *AttendanceResponse `json:"record"`
}

// DailyRosterResponse partitions the employees in scope into present and
// absent for one day
type DailyRosterResponse struct {
	Date    string        `json:"date"`
	Present []RosterEntry `json:"present"`
	Absent  []RosterEntry `json:"absent"`
}

// CheckIn transitions (employee, day) from NoRecord to CheckedIn. Any
// existing record for the day, present or absent, is a conflict and is
// attached to the error for client reconciliation.
func (s *AttendanceService) CheckIn(scope authz.Scope, employeeID uuid.UUID, timestamp *time.Time) (*AttendanceResponse, error) {
	if _, err := s.employeeInScope(scope, employeeID); err != nil {
		return nil, err
	}

	ts := s.now()
	if timestamp != nil {
		ts = *timestamp
	}
	day := models.DateOf(ts)

	existing, err := s.repo.GetByEmployeeAndDate(employeeID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up attendance record: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("already checked in today", s.toResponse(existing))
	}

	record := &models.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       day,
		CheckIn:    &ts,
		IsAbsent:   false,
	}

	if err := s.repo.Create(record); err != nil {
		// A concurrent writer may have taken the daily slot between the
		// lookup and the insert; the store's unique index reports it.
		if apperrors.IsConflict(err) {
			return nil, s.conflictWithCurrent(employeeID, day, "already checked in today")
		}
		return nil, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return s.toResponse(record), nil
}

// CheckOut transitions (employee, day) from CheckedIn to CheckedOut. The
// supplied timestamp is stored as-is; ordering against check_in is not
// validated. An absence record for the day is a conflict, not a missing
// check-in.
func (s *AttendanceService) CheckOut(scope authz.Scope, employeeID uuid.UUID, timestamp *time.Time) (*AttendanceResponse, error) {
	if _, err := s.employeeInScope(scope, employeeID); err != nil {
		return nil, err
	}

	ts := s.now()
	if timestamp != nil {
		ts = *timestamp
	}
	day := models.DateOf(ts)

	record, err := s.repo.GetByEmployeeAndDate(employeeID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCheckInNotFound
		}
		return nil, fmt.Errorf("failed to look up attendance record: %w", err)
	}

	if record.IsAbsent {
		return nil, apperrors.NewConflictError("marked absent today", s.toResponse(record))
	}
	if record.CheckIn == nil {
		return nil, apperrors.ErrCheckInNotFound
	}
	if record.CheckOut != nil {
		return nil, apperrors.NewConflictError("already checked out", s.toResponse(record))
	}

	record.CheckOut = &ts
	if err := s.repo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return s.toResponse(record), nil
}

// MarkAbsent records an explicit absence for the day, allowed only when no
// record exists yet
func (s *AttendanceService) MarkAbsent(scope authz.Scope, employeeID uuid.UUID, date *time.Time) (*AttendanceResponse, error) {
	if _, err := s.employeeInScope(scope, employeeID); err != nil {
		return nil, err
	}

	day := models.DateOf(s.now())
	if date != nil {
		day = models.DateOf(*date)
	}

	existing, err := s.repo.GetByEmployeeAndDate(employeeID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up attendance record: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("attendance record already exists for this date", s.toResponse(existing))
	}

	record := &models.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       day,
		IsAbsent:   true,
	}

	if err := s.repo.Create(record); err != nil {
		if apperrors.IsConflict(err) {
			return nil, s.conflictWithCurrent(employeeID, day, "attendance record already exists for this date")
		}
		return nil, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return s.toResponse(record), nil
}

// List retrieves attendance records in scope, newest first. The caller's
// scope overrides any conflicting filter values.
func (s *AttendanceService) List(scope authz.Scope, filter repository.AttendanceFilter, page, pageSize int) (*AttendanceListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	if scope.EmployeeID != nil {
		filter.EmployeeID = scope.EmployeeID
		filter.OrganizationID = nil
	}
	if scope.OrganizationID != nil {
		filter.OrganizationID = scope.OrganizationID
	}

	offset := (page - 1) * pageSize
	records, total, err := s.repo.List(filter, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]AttendanceResponse, len(records))
	for i, record := range records {
		responses[i] = *s.toResponse(&record)
	}

	return &AttendanceListResponse{
		Records:  responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// DailySummary computes presence for every employee in scope on one day.
// An employee is present iff a record exists with is_absent false; a
// checked-out record still counts present for the day.
func (s *AttendanceService) DailySummary(scope authz.Scope, date time.Time) (*DailySummaryResponse, error) {
	day := models.DateOf(date)

	employees, err := s.employeeRepo.AllByOrganization(scope.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := s.repo.ListByDate(day, scope.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	byEmployee := make(map[uuid.UUID]*models.AttendanceRecord, len(records))
	for i := range records {
		byEmployee[records[i].EmployeeID] = &records[i]
	}

	present := 0
	for _, employee := range employees {
		if record, ok := byEmployee[employee.ID]; ok && !record.IsAbsent {
			present++
		}
	}

	total := len(employees)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(present) / float64(total) * 100))
	}

	return &DailySummaryResponse{
		Date:           day.Format("2006-01-02"),
		TotalEmployees: total,
		PresentCount:   present,
		AbsentCount:    total - present,
		Percentage:     percentage,
	}, nil
}

// DailyRoster partitions the employees in scope into present and absent for
// one day. Present entries are ordered by check-in descending; entries
// without a check-in timestamp sort last.
func (s *AttendanceService) DailyRoster(scope authz.Scope, date time.Time) (*DailyRosterResponse, error) {
	day := models.DateOf(date)

	employees, err := s.employeeRepo.AllByOrganization(scope.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := s.repo.ListByDate(day, scope.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	byEmployee := make(map[uuid.UUID]*models.AttendanceRecord, len(records))
	for i := range records {
		byEmployee[records[i].EmployeeID] = &records[i]
	}

	roster := &DailyRosterResponse{
		Date:    day.Format("2006-01-02"),
		Present: []RosterEntry{},
		Absent:  []RosterEntry{},
	}

	for _, employee := range employees {
		entry := RosterEntry{Employee: *employeeToResponse(&employee)}
		record, ok := byEmployee[employee.ID]
		if ok {
			entry.Record = s.toResponse(record)
		}
		if ok && !record.IsAbsent {
			roster.Present = append(roster.Present, entry)
		} else {
			roster.Absent = append(roster.Absent, entry)
		}
	}

	sort.SliceStable(roster.Present, func(i, j int) bool {
		a, b := roster.Present[i].Record.CheckIn, roster.Present[j].Record.CheckIn
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	return roster, nil
}

// employeeInScope verifies the target employee exists and falls inside the
// caller's scope
func (s *AttendanceService) employeeInScope(scope authz.Scope, employeeID uuid.UUID) (*models.Employee, error) {
	if scope.EmployeeID != nil && *scope.EmployeeID != employeeID {
		return nil, apperrors.ErrSelfScopeViolation
	}

	employee, err := s.employeeRepo.GetByID(employeeID)
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

// conflictWithCurrent re-reads the winning record after a unique-index
// violation so the conflict response still carries the existing row
func (s *AttendanceService) conflictWithCurrent(employeeID uuid.UUID, day time.Time, message string) error {
	current, err := s.repo.GetByEmployeeAndDate(employeeID, day)
	if err != nil {
		return apperrors.NewConflictError(message, nil)
	}
	return apperrors.NewConflictError(message, s.toResponse(current))
}

func (s *AttendanceService) toResponse(record *models.AttendanceRecord) *AttendanceResponse {
	return &AttendanceResponse{
		ID:         record.ID,
		EmployeeID: record.EmployeeID,
		Date:       record.Date.Format("2006-01-02"),
		CheckIn:    record.CheckIn,
		CheckOut:   record.CheckOut,
		IsAbsent:   record.IsAbsent,
	}
}

func employeeToResponse(employee *models.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:             employee.ID,
		OrganizationID: employee.OrganizationID,
		Name:           employee.Name,
		Email:          employee.Email,
		Department:     employee.Department,
		CreatedAt:      employee.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      employee.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
