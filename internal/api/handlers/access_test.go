package handlers

import (
	"net/http"
	"testing"

	"attendance-tracker-backend/internal/authz"
	"attendance-tracker-backend/internal/database/models"
	apperrors "attendance-tracker-backend/internal/errors"
	"attendance-tracker-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func adminIdentity() *authz.Identity {
	return &authz.Identity{
		UserID: uuid.New(),
		Email:  "admin@example.com",
		Role:   models.RoleAdmin,
	}
}

func managerIdentity(orgID uuid.UUID) *authz.Identity {
	return &authz.Identity{
		UserID:         uuid.New(),
		Email:          "manager@example.com",
		Role:           models.RoleManager,
		OrganizationID: &orgID,
	}
}

func employeeIdentity(orgID, employeeID uuid.UUID) *authz.Identity {
	return &authz.Identity{
		UserID:         uuid.New(),
		Email:          "employee@example.com",
		Role:           models.RoleEmployee,
		OrganizationID: &orgID,
		EmployeeID:     &employeeID,
	}
}

// identityMiddleware injects the identity currently held in the pointer, so a
// suite can switch callers between tests without re-registering routes.
func identityMiddleware(identity **authz.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if *identity != nil {
			testutils.WithIdentity(*identity)(c)
			return
		}
		c.Next()
	}
}

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"authentication", apperrors.ErrInvalidLogin, http.StatusUnauthorized, "invalid email or password"},
		{"authorization", apperrors.ErrOrganizationScope, http.StatusForbidden, "outside the caller's organization"},
		{"not found", apperrors.ErrEmployeeNotFound, http.StatusNotFound, "employee not found"},
		{"conflict", apperrors.ErrAlreadyCheckedIn, http.StatusConflict, "already checked in today"},
		{"validation", apperrors.NewValidationError("date", "must not be empty"), http.StatusBadRequest, "date - must not be empty"},
		{"unclassified", assert.AnError, http.StatusInternalServerError, "fell back"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			httpSuite := testutils.SetupHTTPTest()
			httpSuite.Router.GET("/boom", func(c *gin.Context) {
				respondError(c, tc.err, "fell back")
			})

			recorder := httpSuite.MakeRequest("GET", "/boom", nil)
			testutils.AssertErrorResponse(t, recorder, tc.wantStatus, tc.wantError)
		})
	}
}

func TestRespondErrorConflictCarriesRecord(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recordID := uuid.New()
	conflict := apperrors.NewConflictError("already checked in today", map[string]string{"id": recordID.String()})

	httpSuite := testutils.SetupHTTPTest()
	httpSuite.Router.GET("/boom", func(c *gin.Context) {
		respondError(c, conflict, "unused")
	})

	recorder := httpSuite.MakeRequest("GET", "/boom", nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	var body map[string]interface{}
	testutils.ParseJSONResponse(t, recorder, &body)
	record, ok := body["record"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, recordID.String(), record["id"])
}

func TestRequireScopeWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	httpSuite := testutils.SetupHTTPTest()
	httpSuite.Router.GET("/guarded", func(c *gin.Context) {
		if _, _, ok := requireScope(c, nil, models.RoleAdmin); !ok {
			return
		}
		c.Status(http.StatusOK)
	})

	recorder := httpSuite.MakeRequest("GET", "/guarded", nil)
	testutils.AssertErrorResponse(t, recorder, http.StatusUnauthorized, "Authentication required")
}
