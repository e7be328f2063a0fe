package handlers

import (
	"errors"
	"net/http"

	"attendance-tracker-backend/internal/auth"
	"attendance-tracker-backend/internal/authz"
	"attendance-tracker-backend/internal/database/models"
	apperrors "attendance-tracker-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// requireScope authorizes the request's identity against the operation's
// allowed roles and optional target organization. On denial it writes the
// response and returns false; handlers must return immediately.
func requireScope(c *gin.Context, targetOrg *uuid.UUID, roles ...models.Role) (authz.Scope, *authz.Identity, bool) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return authz.Scope{}, nil, false
	}

	scope, err := authz.Authorize(*identity, roles, targetOrg)
	if err != nil {
		respondError(c, err, "Authorization failed")
		return authz.Scope{}, nil, false
	}

	return scope, identity, true
}

// respondError maps the error taxonomy to HTTP statuses. Conflict responses
// carry the pre-existing record so the caller can reconcile without a
// follow-up read.
func respondError(c *gin.Context, err error, fallback string) {
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsConflict(err):
		body := gin.H{"error": err.Error()}
		if record := apperrors.ConflictRecord(err); record != nil {
			body["record"] = record
		}
		c.JSON(http.StatusConflict, body)
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
