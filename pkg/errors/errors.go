package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Booking failures. All of these are user-facing validation outcomes, not
// transient conditions; callers present them directly and never retry.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInvalidSlot        = New("INVALID_SLOT", http.StatusNotFound, "appointment slot does not exist")
	ErrGenderMismatch     = New("GENDER_MISMATCH", http.StatusUnprocessableEntity, "candidate gender does not match slot designation")
	ErrSlotFull           = New("SLOT_FULL", http.StatusConflict, "appointment slot has no remaining capacity")
	ErrSlotHasEnrollments = New("SLOT_HAS_ENROLLMENTS", http.StatusConflict, "slot has enrolled students and cannot be deleted")
	ErrAlreadyCheckedIn   = New("ALREADY_CHECKED_IN", http.StatusConflict, "student is already checked in")
	ErrCapacityViolation  = New("CAPACITY_VIOLATION", http.StatusConflict, "capacity cannot drop below current enrollment")
	ErrRegistrationClosed = New("REGISTRATION_CLOSED", http.StatusForbidden, "registration is currently closed")
)

// Transport and infrastructure failures.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid username or password")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
	ErrStaleSnapshot      = New("STALE_SNAPSHOT", http.StatusConflict, "snapshot revision changed underneath the writer")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Is reports whether target matches by code, making sentinel comparisons work
// through Clone and Wrap.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e != nil && e.Code == other.Code
}
