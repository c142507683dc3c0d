package domain

import (
	"errors"
	"fmt"
)

// Authorization failures.
var (
	ErrTokenMissing    = errors.New("token required")
	ErrTokenInvalid    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired, please log in again")
	ErrRoleMismatch    = errors.New("insufficient role")
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountDisabled = errors.New("account disabled")
)

// Account errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminNotFound      = errors.New("admin not found")
)

// Upload errors.
var (
	ErrUnsupportedMediaType = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file too large")
	ErrTooManyFiles         = errors.New("too many files")
	ErrInvalidCategory      = errors.New("invalid upload category")
	ErrNoFiles              = errors.New("no file uploaded")
)

// Resource errors.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("access forbidden")
	ErrConflict     = errors.New("conflict")
	ErrSoldOut      = errors.New("match is sold out")
	ErrNotOnSale    = errors.New("tickets are not on sale for this match")

	ErrPurchaseInProgress = errors.New("a purchase with this idempotency key is still in progress")
)

// RoleMismatchError is returned when a token's role is outside the set a gate
// accepts. It matches ErrRoleMismatch under errors.Is.
type RoleMismatchError struct {
	Required Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("%s access required", e.Required)
}

func (e *RoleMismatchError) Is(target error) bool {
	return target == ErrRoleMismatch
}

// ValidationError carries a user-readable message for a rejected input while
// still matching its sentinel cause.
type ValidationError struct {
	Cause   error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Invalid returns a ValidationError wrapping cause with a formatted message.
func Invalid(cause error, format string, args ...any) error {
	return &ValidationError{Cause: cause, Message: fmt.Sprintf(format, args...)}
}
