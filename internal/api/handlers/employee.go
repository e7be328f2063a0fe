package handlers

import (
	"net/http"

	"attendance-tracker-backend/internal/database/models"
	"attendance-tracker-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EmployeeHandler handles HTTP requests for employees
type EmployeeHandler struct {
	service service.EmployeeServiceInterface
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(service service.EmployeeServiceInterface) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// CreateEmployee handles POST /api/v1/employees
// @Summary Create a new employee
// @Description Create an employee inside an organization. Managers may only create employees in their own organization.
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body service.CreateEmployeeRequest true "Employee data"
// @Success 201 {object} service.EmployeeResponse "Successfully created employee"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Organization outside the caller's scope"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 409 {object} map[string]interface{} "Employee email already taken"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	scope, _, ok := requireScope(c, nil, models.RoleAdmin, models.RoleManager)
	if !ok {
		return
	}

	var req service.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	employee, err := h.service.Create(scope, &req)
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// GetEmployee handles GET /api/v1/employees/:id
// @Summary Get employee by ID
// @Description Get a specific employee by its UUID, narrowed to the caller's scope
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID (UUID)"
// @Success 200 {object} service.EmployeeResponse "Successfully retrieved employee"
// @Failure 400 {object} map[string]interface{} "Invalid employee ID"
// @Failure 403 {object} map[string]interface{} "Employee outside the caller's scope"
// @Failure 404 {object} map[string]interface{} "Employee not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID: invalid UUID format"})
		return
	}

	scope, _, ok := requireScope(c, nil, models.RoleAdmin, models.RoleManager)
	if !ok {
		return
	}

	employee, err := h.service.GetByID(scope, id)
	if err != nil {
		respondError(c, err, "Failed to get employee")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// ListEmployees handles GET /api/v1/employees
// @Summary List employees
// @Description List employees with pagination. Managers see only their own organization.
// @Tags employees
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.EmployeeListResponse "Successfully retrieved employees"
// @Failure 403 {object} map[string]interface{} "Caller is not an admin or manager"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	scope, _, ok := requireScope(c, nil, models.RoleAdmin, models.RoleManager)
	if !ok {
		return
	}

	page, pageSize := pagination(c)

	employees, err := h.service.List(scope, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to get employees")
		return
	}

	c.JSON(http.StatusOK, employees)
}

// UpdateEmployee handles PUT /api/v1/employees/:id
// @Summary Update employee
// @Description Update an employee's name, email and department. The organization cannot be changed.
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID (UUID)"
// @Param employee body service.UpdateEmployeeRequest true "Updated employee data"
// @Success 200 {object} service.EmployeeResponse "Successfully updated employee"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 403 {object} map[string]interface{} "Employee outside the caller's scope"
// @Failure 404 {object} map[string]interface{} "Employee not found"
// @Failure 409 {object} map[string]interface{} "Employee email already taken"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return
	}

	scope, _, ok := requireScope(c, nil, models.RoleAdmin, models.RoleManager)
	if !ok {
		return
	}

	var req service.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	employee, err := h.service.Update(scope, id, &req)
	if err != nil {
		respondError(c, err, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles DELETE /api/v1/employees/:id
// @Summary Delete employee
// @Description Delete an employee and its attendance records
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID (UUID)"
// @Success 204 "Successfully deleted employee"
// @Failure 400 {object} map[string]interface{} "Invalid employee ID"
// @Failure 403 {object} map[string]interface{} "Employee outside the caller's scope"
// @Failure 404 {object} map[string]interface{} "Employee not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return
	}

	scope, _, ok := requireScope(c, nil, models.RoleAdmin, models.RoleManager)
	if !ok {
		return
	}

	if err := h.service.Delete(scope, id); err != nil {
		respondError(c, err, "Failed to delete employee")
		return
	}

	c.Status(http.StatusNoContent)
}
