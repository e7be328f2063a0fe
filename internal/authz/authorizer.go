package authz

import (
	"fmt"

	"attendance-tracker-backend/internal/database/models"
	apperrors "attendance-tracker-backend/internal/errors"

	"github.com/google/uuid"
)

// Identity is a caller's resolved identity after credential verification.
// OrganizationID is nil for admins; EmployeeID is the linked employee row, nil
// when the profile has not been linked yet.
type Identity struct {
	UserID         uuid.UUID
	Email          string
	Role           models.Role
	OrganizationID *uuid.UUID
	EmployeeID     *uuid.UUID
}

// Scope is the narrowing predicate an authorized operation must apply to its
// data-store queries. Nil fields mean unrestricted along that axis.
type Scope struct {
	OrganizationID *uuid.UUID
	EmployeeID     *uuid.UUID
}

// Unrestricted reports whether the scope narrows nothing
func (s Scope) Unrestricted() bool {
	return s.OrganizationID == nil && s.EmployeeID == nil
}

// Authorize decides whether the identity may invoke an operation open to the
// given roles, optionally naming a target organization. It returns the scope
// to narrow queries with, or a typed denial. Pure decision over the supplied
// identity; re-evaluated independently per request.
func Authorize(identity Identity, required []models.Role, targetOrg *uuid.UUID) (Scope, error) {
	if !identity.Role.IsValid() {
		return Scope{}, apperrors.ErrMissingRole
	}

	allowed := false
	for _, role := range required {
		if identity.Role == role {
			allowed = true
			break
		}
	}
	if !allowed {
		return Scope{}, apperrors.NewAuthorizationError(
			fmt.Sprintf("operation requires role %s, caller has role %s", roleList(required), identity.Role))
	}

	switch identity.Role {
	case models.RoleAdmin:
		return Scope{}, nil

	case models.RoleManager:
		if identity.OrganizationID == nil {
			return Scope{}, apperrors.ErrOrganizationScope
		}
		if targetOrg != nil && *targetOrg != *identity.OrganizationID {
			return Scope{}, apperrors.ErrOrganizationScope
		}
		return Scope{OrganizationID: identity.OrganizationID}, nil

	case models.RoleEmployee:
		// Absence of the employee link is a lookup failure, not a denial
		if identity.EmployeeID == nil {
			return Scope{}, apperrors.ErrEmployeeNotFound
		}
		return Scope{EmployeeID: identity.EmployeeID}, nil
	}

	return Scope{}, apperrors.ErrRoleNotAllowed
}

func roleList(roles []models.Role) string {
	if len(roles) == 0 {
		return "none"
	}
	out := string(roles[0])
	for _, r := range roles[1:] {
		out += " or " + string(r)
	}
	return out
}
