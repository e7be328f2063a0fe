package handlers

import (
	"net/http"

	"attendance-tracker-backend/internal/database/models"
	"attendance-tracker-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for user profiles
type UserHandler struct {
	service service.ProfileServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(service service.ProfileServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// AssignManager handles POST /api/v1/users/assign-manager
// @Summary Assign a user as manager of an organization
// @Description Set a profile's role to manager and bind it to an organization. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Param assignment body service.AssignManagerRequest true "User and organization"
// @Success 200 {object} service.ProfileResponse "Successfully assigned manager"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Caller is not an admin"
// @Failure 404 {object} map[string]interface{} "Profile or organization not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /users/assign-manager [post]
func (h *UserHandler) AssignManager(c *gin.Context) {
	if _, _, ok := requireScope(c, nil, models.RoleAdmin); !ok {
		return
	}

	var req service.AssignManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	profile, err := h.service.AssignManager(&req)
	if err != nil {
		respondError(c, err, "Failed to assign manager")
		return
	}

	c.JSON(http.StatusOK, profile)
}
