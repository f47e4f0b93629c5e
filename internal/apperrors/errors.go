package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrTenantRequired is returned when an operation needs a bound tenant
// and neither the context nor the caller supplied one. Never defaulted.
var ErrTenantRequired = errors.New("tenant is required but not bound")

// ErrTenantMismatch indicates an entity or document referenced a tenant
// other than the bound one. This is a programming error, not a business condition.
var ErrTenantMismatch = errors.New("entity belongs to a different tenant")

// ErrGLAccountNotConfigured is returned when a posting rule cannot resolve
// a required semantic account role to an existing account. Wrapped errors
// name the missing role.
var ErrGLAccountNotConfigured = errors.New("gl account not configured")

// ErrUnbalancedEntry indicates a posting rule produced lines whose debits
// and credits do not match. This is a rule defect and is never corrected silently.
var ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")

// ErrAlreadyPosted indicates an active journal entry already exists for the
// source document. Re-posting requires an explicit reversal first.
var ErrAlreadyPosted = errors.New("an active journal entry already exists for this document")

// ErrAlreadyReversed indicates the journal entry has already been reversed.
var ErrAlreadyReversed = errors.New("journal entry is already reversed")

// ErrCannotReverseReversal indicates an attempt to reverse a reversing entry.
var ErrCannotReverseReversal = errors.New("cannot reverse a reversal entry")

// NewGLAccountNotConfigured wraps ErrGLAccountNotConfigured with the missing role.
func NewGLAccountNotConfigured(role string) error {
	return fmt.Errorf("%w: role %q", ErrGLAccountNotConfigured, role)
}

// AppError carries an internal code alongside a message and an optional cause.
// Used by the persistence layer for infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
