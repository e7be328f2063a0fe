package handlers

import (
	"net/http"
	"time"

	"attendance-tracker-backend/internal/authz"
	"attendance-tracker-backend/internal/database/models"
	"attendance-tracker-backend/internal/repository"
	"attendance-tracker-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttendanceHandler handles HTTP requests for attendance records
type AttendanceHandler struct {
	service service.AttendanceServiceInterface
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(service service.AttendanceServiceInterface) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// PunchRequest is the body for check-in and check-out. Employees omit
// employee_id and punch for themselves; admins and managers must name the
// employee. Timestamp defaults to the server clock.
type PunchRequest struct {
	EmployeeID *uuid.UUID `json:"employee_id"`
	Timestamp  *time.Time `json:"timestamp"`
}

// MarkAbsentRequest is the body for marking an employee absent on a date
// (YYYY-MM-DD, default today).
type MarkAbsentRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
	Date       string    `json:"date"`
}

// CheckIn handles POST /api/v1/attendance/check-in
// @Summary Check in for the day
// @Description Open today's attendance record. One record per employee per day; a second check-in returns 409 with the existing record.
// @Tags attendance
// @Accept json
// @Produce json
// @Param punch body PunchRequest true "Check-in data"
// @Success 201 {object} service.AttendanceResponse "Successfully checked in"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Employee outside the caller's scope"
// @Failure 404 {object} map[string]interface{} "Employee not found"
// @Failure 409 {object} map[string]interface{} "Already checked in or marked absent today"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	scope, _, ok := requireScope(c, nil, models.RoleAdmin, models.RoleManager, models.RoleEmployee)
	if !ok {
		return
	}

	employeeID, timestamp, ok := h.bindPunch(c, scope)
	if !ok {
		return
	}

	record, err := h.service.CheckIn(scope, employeeID, timestamp)
	if err != nil {
		respondError(c, err, "Failed to check in")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// CheckOut handles POST /api/v1/attendance/check-out
// @Summary Check out for the day
// @Description Close today's open attendance record. Check-out without a prior check-in returns 404; a second check-out or a check-out on an absence record returns 409.
// @Tags attendance
// @Accept json
// @Produce json
// @Param punch body PunchRequest true "Check-out data"
// @Success 200 {object} service.AttendanceResponse "Successfully checked out"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Employee outside the caller's scope"
// @Failure 404 {object} map[string]interface{} "No check-in recorded today"
// @Failure 409 {object} map[string]interface{} "Already checked out or marked absent today"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	scope, _, ok := requireScope(c, nil, models.RoleAdmin, models.RoleManager, models.RoleEmployee)
	if !ok {
		return
	}

	employeeID, timestamp, ok := h.bindPunch(c, scope)
	if !ok {
		return
	}

	record, err := h.service.CheckOut(scope, employeeID, timestamp)
	if err != nil {
		respondError(c, err, "Failed to check out")
		return
	}

	c.JSON(http.StatusOK, record)
}

// MarkAbsent handles POST /api/v1/attendance/mark-absent
// @Summary Mark an employee absent
// @Description Record an absence for a date. Fails with 409 if any attendance record already exists for that employee and date.
// @Tags attendance
// @Accept json
// @Produce json
// @Param absence body MarkAbsentRequest true "Absence data"
// @Success 201 {object} service.AttendanceResponse "Successfully marked absent"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Employee outside the caller's scope"
// @Failure 404 {object} map[string]interface{} "Employee not found"
// @Failure 409 {object} map[string]interface{} "Attendance record already exists for the date"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /attendance/mark-absent [post]
func (h *AttendanceHandler) MarkAbsent(c *gin.Context) {
	scope, _, ok := requireScope(c, nil, models.RoleAdmin, models.RoleManager)
	if !ok {
		return
	}

	var req MarkAbsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var date *time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: expected YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	record, err := h.service.MarkAbsent(scope, req.EmployeeID, date)
	if err != nil {
		respondError(c, err, "Failed to mark absent")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ListAttendance handles GET /api/v1/attendance
// @Summary List attendance records
// @Description List attendance records filtered by date range, employee and organization, narrowed to the caller's scope
// @Tags attendance
// @Accept json
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, inclusive)"
// @Param employee_id query string false "Employee ID (UUID)"
// @Param organization_id query string false "Organization ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.AttendanceListResponse "Successfully retrieved attendance records"
// @Failure 400 {object} map[string]interface{} "Invalid filter"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /attendance [get]
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	scope, _, ok := requireScope(c, nil, models.RoleAdmin, models.RoleManager, models.RoleEmployee)
	if !ok {
		return
	}

	var filter repository.AttendanceFilter

	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date: expected YYYY-MM-DD"})
			return
		}
		filter.From = &parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date: expected YYYY-MM-DD"})
			return
		}
		filter.To = &parsed
	}
	if raw := c.Query("employee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID: invalid UUID format"})
			return
		}
		filter.EmployeeID = &id
	}
	if raw := c.Query("organization_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID: invalid UUID format"})
			return
		}
		filter.OrganizationID = &id
	}

	page, pageSize := pagination(c)

	records, err := h.service.List(scope, filter, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to get attendance records")
		return
	}

	c.JSON(http.StatusOK, records)
}

// DailySummary handles GET /api/v1/attendance/summary
// @Summary Daily attendance summary
// @Description Per-organization counts of present, absent and unrecorded employees for a date (default today)
// @Tags attendance
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD, default today)"
// @Param organization_id query string false "Organization ID (UUID); managers may only name their own organization"
// @Success 200 {object} service.DailySummaryResponse "Successfully computed summary"
// @Failure 400 {object} map[string]interface{} "Invalid date or organization ID"
// @Failure 403 {object} map[string]interface{} "Caller is not an admin or manager, or named a foreign organization"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /attendance/summary [get]
func (h *AttendanceHandler) DailySummary(c *gin.Context) {
	targetOrg, ok := h.bindOrgFilter(c)
	if !ok {
		return
	}

	scope, _, ok := requireScope(c, targetOrg, models.RoleAdmin, models.RoleManager)
	if !ok {
		return
	}
	if scope.OrganizationID == nil {
		scope.OrganizationID = targetOrg
	}

	date, ok := h.bindDate(c)
	if !ok {
		return
	}

	summary, err := h.service.DailySummary(scope, date)
	if err != nil {
		respondError(c, err, "Failed to compute daily summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DailyRoster handles GET /api/v1/attendance/roster
// @Summary Daily roster
// @Description Employees partitioned into present, absent and unrecorded for a date (default today). Present entries are ordered by check-in time, latest first.
// @Tags attendance
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD, default today)"
// @Param organization_id query string false "Organization ID (UUID); managers may only name their own organization"
// @Success 200 {object} service.DailyRosterResponse "Successfully computed roster"
// @Failure 400 {object} map[string]interface{} "Invalid date or organization ID"
// @Failure 403 {object} map[string]interface{} "Caller is not an admin or manager, or named a foreign organization"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /attendance/roster [get]
func (h *AttendanceHandler) DailyRoster(c *gin.Context) {
	targetOrg, ok := h.bindOrgFilter(c)
	if !ok {
		return
	}

	scope, _, ok := requireScope(c, targetOrg, models.RoleAdmin, models.RoleManager)
	if !ok {
		return
	}
	if scope.OrganizationID == nil {
		scope.OrganizationID = targetOrg
	}

	date, ok := h.bindDate(c)
	if !ok {
		return
	}

	roster, err := h.service.DailyRoster(scope, date)
	if err != nil {
		respondError(c, err, "Failed to compute daily roster")
		return
	}

	c.JSON(http.StatusOK, roster)
}

// bindPunch resolves the target employee for check-in and check-out. When the
// caller is employee-scoped the body's employee_id may be omitted; otherwise
// it is required.
func (h *AttendanceHandler) bindPunch(c *gin.Context, scope authz.Scope) (uuid.UUID, *time.Time, bool) {
	var req PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return uuid.Nil, nil, false
	}

	switch {
	case req.EmployeeID != nil:
		return *req.EmployeeID, req.Timestamp, true
	case scope.EmployeeID != nil:
		return *scope.EmployeeID, req.Timestamp, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id is required"})
		return uuid.Nil, nil, false
	}
}

// bindOrgFilter parses the optional organization_id query parameter. The
// caller passes it to requireScope so managers cannot name a foreign
// organization; for admins it narrows the otherwise unbounded scope.
func (h *AttendanceHandler) bindOrgFilter(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("organization_id")
	if raw == "" {
		return nil, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID: invalid UUID format"})
		return nil, false
	}
	return &id, true
}

func (h *AttendanceHandler) bindDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), true
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}
