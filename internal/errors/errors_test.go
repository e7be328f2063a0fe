package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "employee"}
		assert.Equal(t, "employee not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "employee"}
		err2 := &NotFoundError{Entity: "employee"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "employee"}
		err2 := &NotFoundError{Entity: "organization"}
		assert.False(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is with predefined errors", func(t *testing.T) {
		assert.True(t, errors.Is(ErrEmployeeNotFound, ErrEmployeeNotFound))
		assert.False(t, errors.Is(ErrEmployeeNotFound, ErrOrganizationNotFound))
		assert.False(t, errors.Is(ErrCheckInNotFound, ErrAttendanceNotFound))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrEmployeeNotFound))
		assert.True(t, IsNotFound(ErrCheckInNotFound))
		assert.False(t, IsNotFound(ErrAlreadyCheckedIn))
	})

	t.Run("IsNotFound sees through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("get employee: %w", ErrEmployeeNotFound)
		assert.True(t, IsNotFound(wrapped))
		assert.True(t, errors.Is(wrapped, ErrEmployeeNotFound))
	})
}

func TestConflictError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &ConflictError{Message: "already checked in today"}
		assert.Equal(t, "already checked in today", err.Error())
	})

	t.Run("errors.Is ignores the attached record", func(t *testing.T) {
		withRecord := NewConflictError("already checked in today", map[string]string{"id": "abc"})
		assert.True(t, errors.Is(withRecord, ErrAlreadyCheckedIn))
	})

	t.Run("errors.Is with different messages", func(t *testing.T) {
		assert.False(t, errors.Is(ErrAlreadyCheckedIn, ErrAlreadyCheckedOut))
	})

	t.Run("empty-message target matches any conflict", func(t *testing.T) {
		anyConflict := &ConflictError{}
		assert.True(t, errors.Is(ErrAlreadyCheckedIn, anyConflict))
		assert.True(t, errors.Is(ErrAttendanceExists, anyConflict))
	})

	t.Run("IsConflict helper", func(t *testing.T) {
		assert.True(t, IsConflict(ErrAttendanceExists))
		assert.True(t, IsConflict(ErrOrganizationExists))
		assert.False(t, IsConflict(ErrEmployeeNotFound))
	})
}

func TestConflictRecord(t *testing.T) {
	t.Run("extracts the attached record", func(t *testing.T) {
		record := map[string]string{"id": "abc"}
		err := NewConflictError("attendance record already exists for this date", record)
		assert.Equal(t, record, ConflictRecord(err))
	})

	t.Run("extracts through wrapping", func(t *testing.T) {
		record := map[string]string{"id": "abc"}
		wrapped := fmt.Errorf("check in: %w", NewConflictError("already checked in today", record))
		assert.Equal(t, record, ConflictRecord(wrapped))
	})

	t.Run("nil when the conflict carries no record", func(t *testing.T) {
		assert.Nil(t, ConflictRecord(ErrAlreadyCheckedIn))
	})

	t.Run("nil for non-conflict errors", func(t *testing.T) {
		assert.Nil(t, ConflictRecord(ErrEmployeeNotFound))
		assert.Nil(t, ConflictRecord(nil))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "email", Message: "invalid format"}
		assert.Equal(t, "validation error: email - invalid format", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		err := &ValidationError{Message: "invalid format"}
		assert.Equal(t, "validation error: invalid format", err.Error())
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		err := NewValidationError("email", "invalid")
		assert.True(t, IsValidation(err))
		assert.False(t, IsValidation(ErrEmployeeNotFound))
	})
}

func TestAuthErrors(t *testing.T) {
	t.Run("IsAuthentication helper", func(t *testing.T) {
		assert.True(t, IsAuthentication(ErrMissingCredentials))
		assert.True(t, IsAuthentication(ErrInvalidToken))
		assert.True(t, IsAuthentication(ErrInvalidLogin))
		assert.False(t, IsAuthentication(ErrRoleNotAllowed))
	})

	t.Run("IsAuthorization helper", func(t *testing.T) {
		assert.True(t, IsAuthorization(ErrRoleNotAllowed))
		assert.True(t, IsAuthorization(ErrOrganizationScope))
		assert.True(t, IsAuthorization(ErrSelfScopeViolation))
		assert.True(t, IsAuthorization(ErrMissingRole))
		assert.False(t, IsAuthorization(ErrInvalidLogin))
	})

	t.Run("IsAuthorization sees through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("authorize: %w", ErrOrganizationScope)
		assert.True(t, IsAuthorization(wrapped))
		assert.True(t, errors.Is(wrapped, ErrOrganizationScope))
	})
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewNotFoundError", func(t *testing.T) {
		err := NewNotFoundError("custom entity")
		assert.Equal(t, "custom entity not found", err.Error())
		assert.True(t, IsNotFound(err))
	})

	t.Run("NewConflictError", func(t *testing.T) {
		err := NewConflictError("custom conflict", nil)
		assert.Equal(t, "custom conflict", err.Error())
		assert.True(t, IsConflict(err))
	})

	t.Run("NewValidationError", func(t *testing.T) {
		err := NewValidationError("field", "message")
		assert.Equal(t, "validation error: field - message", err.Error())
		assert.True(t, IsValidation(err))
	})

	t.Run("NewAuthenticationError", func(t *testing.T) {
		err := NewAuthenticationError("no token")
		assert.Equal(t, "no token", err.Error())
		assert.True(t, IsAuthentication(err))
	})

	t.Run("NewAuthorizationError", func(t *testing.T) {
		err := NewAuthorizationError("denied")
		assert.Equal(t, "denied", err.Error())
		assert.True(t, IsAuthorization(err))
	})
}
