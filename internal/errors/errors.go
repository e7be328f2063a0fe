package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ConflictError represents a state-transition or uniqueness violation.
// Record carries the pre-existing row so the caller can reconcile without a
// follow-up read.
type ConflictError struct {
	Message string
	Record  interface{}
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Is enables errors.Is() comparison for ConflictError. The attached record is
// ignored so sentinel comparisons match conflicts carrying any record.
func (e *ConflictError) Is(target error) bool {
	t, ok := target.(*ConflictError)
	if !ok {
		return false
	}
	return t.Message == "" || e.Message == t.Message
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrOrganizationNotFound = &NotFoundError{Entity: "organization"}
	ErrEmployeeNotFound     = &NotFoundError{Entity: "employee"}
	ErrProfileNotFound      = &NotFoundError{Entity: "profile"}
	ErrAttendanceNotFound   = &NotFoundError{Entity: "attendance record"}
	ErrCheckInNotFound      = &NotFoundError{Entity: "check-in"}
)

// Conflict Errors
var (
	ErrAlreadyCheckedIn   = &ConflictError{Message: "already checked in today"}
	ErrAlreadyCheckedOut  = &ConflictError{Message: "already checked out"}
	ErrAttendanceExists   = &ConflictError{Message: "attendance record already exists for this date"}
	ErrOrganizationExists = &ConflictError{Message: "organization already exists with this name"}
	ErrEmployeeExists     = &ConflictError{Message: "employee already exists with this email"}
	ErrProfileExists      = &ConflictError{Message: "profile already exists with this email"}
)

// Authentication Errors
var (
	ErrMissingCredentials = &AuthenticationError{Message: "authorization credentials are required"}
	ErrInvalidToken       = &AuthenticationError{Message: "invalid or expired token"}
	ErrInvalidLogin       = &AuthenticationError{Message: "invalid email or password"}
)

// Authorization Errors
var (
	ErrRoleNotAllowed     = &AuthorizationError{Message: "role is not allowed to perform this operation"}
	ErrOrganizationScope  = &AuthorizationError{Message: "operation is outside the caller's organization"}
	ErrSelfScopeViolation = &AuthorizationError{Message: "employees may only access their own records"}
	ErrMissingRole        = &AuthorizationError{Message: "identity has no role assigned"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// ConflictRecord extracts the pre-existing record attached to a ConflictError,
// or nil when the error is not a conflict or carries no record.
func ConflictRecord(err error) interface{} {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr.Record
	}
	return nil
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewConflictError creates a new ConflictError with an attached record
func NewConflictError(message string, record interface{}) error {
	return &ConflictError{Message: message, Record: record}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
