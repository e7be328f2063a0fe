package handlers

import (
	"net/http"

	"attendance-tracker-backend/internal/auth"
	"attendance-tracker-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and identity echo
type AuthHandler struct {
	profiles service.ProfileServiceInterface
	tokens   *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(profiles service.ProfileServiceInterface, tokens *auth.Service) *AuthHandler {
	return &AuthHandler{profiles: profiles, tokens: tokens}
}

// TokenResponse is the body returned by register and login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Register handles POST /api/auth/register
// @Summary Register a new account
// @Description Create an employee-role profile. When an employee row with the same email exists, the profile is linked to it and inherits its organization.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body service.RegisterRequest true "Email and password"
// @Success 201 {object} TokenResponse "Account created"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	profile, err := h.profiles.Register(&req)
	if err != nil {
		respondError(c, err, "Failed to register")
		return
	}

	token, expiresIn, err := h.tokens.IssueAccessToken(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue access token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn})
}

// Login handles POST /api/auth/login
// @Summary Log in with email and password
// @Description Verify stored credentials and issue a service access token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body service.LoginRequest true "Email and password"
// @Success 200 {object} TokenResponse "Access token issued"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid email or password"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	profile, err := h.profiles.Login(&req)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	token, expiresIn, err := h.tokens.IssueAccessToken(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue access token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn})
}

// Me handles GET /api/v1/me
// @Summary Get the caller's resolved identity
// @Description Echo the identity resolved from the bearer token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Resolved identity"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Security BearerAuth
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":         identity.UserID,
		"email":           identity.Email,
		"role":            identity.Role,
		"organization_id": identity.OrganizationID,
		"employee_id":     identity.EmployeeID,
	})
}
