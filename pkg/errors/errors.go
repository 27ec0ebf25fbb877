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

// Is matches errors sharing the same code, so a Clone still satisfies
// errors.Is against its sentinel.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e != nil && other != nil && e.Code == other.Code
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

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")

	// Allocation-domain errors. NotFound variants use 400 on the generation
	// surface because the id arrives as a query parameter, not a path.
	ErrPeriodNotFound        = New("PERIOD_NOT_FOUND", http.StatusBadRequest, "academic period not found")
	ErrClassScheduleNotFound = New("CLASS_SCHEDULE_NOT_FOUND", http.StatusNotFound, "class schedule not found")
	ErrScheduleNotFound      = New("SCHEDULE_NOT_FOUND", http.StatusBadRequest, "schedule not found")
	ErrDateOutOfPeriod       = New("DATE_OUT_OF_PERIOD", http.StatusBadRequest, "date falls outside the academic period")
	ErrDayOfWeekMismatch     = New("DAY_OF_WEEK_MISMATCH", http.StatusBadRequest, "date does not fall on the schedule's day of week")
	ErrHolidayConflict       = New("HOLIDAY_CONFLICT", http.StatusBadRequest, "date is a public holiday")
	ErrTeacherConflict       = New("TEACHER_CONFLICT", http.StatusBadRequest, "teacher already has a session at this date and slot")
	ErrNoRoomAvailable       = New("NO_ROOM_AVAILABLE", http.StatusBadRequest, "no compatible room available for this date and slot")
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
