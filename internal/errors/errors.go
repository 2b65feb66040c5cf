package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodePermissionDenied indicates the caller does not have permission
	CodePermissionDenied Code = "permission_denied"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeUnavailable indicates a collaborator is currently unavailable
	CodeUnavailable Code = "unavailable"

	// CodeValidation indicates a validation error
	CodeValidation Code = "validation"

	// CodeInvalidDistance indicates a negative or non-finite distance was measured
	CodeInvalidDistance Code = "invalid_distance"

	// CodeNoApplicableBand indicates a range table has no band covering a distance
	CodeNoApplicableBand Code = "no_applicable_band"

	// CodeUnknownStrategy indicates a range strategy id that is not registered
	CodeUnknownStrategy Code = "unknown_strategy"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// Keep the code of an already coded error
	var rangeErr *Error
	if errors.As(err, &rangeErr) {
		return &Error{
			Code:    rangeErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(rangeErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// PermissionDeniedf creates a formatted permission denied error
func PermissionDeniedf(format string, args ...any) *Error {
	return Newf(CodePermissionDenied, format, args...)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// InvalidDistance creates an error for a distance that cannot be looked up
func InvalidDistance(distance float64) *Error {
	return Newf(CodeInvalidDistance, "invalid distance %v: must be finite and non-negative", distance).
		WithMeta("distance", distance)
}

// NoApplicableBand creates an error for a distance no band of the table covers
func NoApplicableBand(table string, distance float64) *Error {
	return Newf(CodeNoApplicableBand, "no range band in table %q covers distance %v", table, distance).
		WithMeta("table", table).
		WithMeta("distance", distance)
}

// UnknownStrategy creates an error for an unregistered strategy id
func UnknownStrategy(id string) *Error {
	return Newf(CodeUnknownStrategy, "unknown range strategy %q", id).
		WithMeta("strategy", id)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var rangeErr *Error
	if errors.As(err, &rangeErr) {
		return rangeErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsPermissionDenied checks if the error is a permission denied error
func IsPermissionDenied(err error) bool {
	return Is(err, CodePermissionDenied)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsInvalidDistance checks if the error is an invalid distance error
func IsInvalidDistance(err error) bool {
	return Is(err, CodeInvalidDistance)
}

// IsNoApplicableBand checks if the error is a no applicable band error
func IsNoApplicableBand(err error) bool {
	return Is(err, CodeNoApplicableBand)
}

// IsUnknownStrategy checks if the error is an unknown strategy error
func IsUnknownStrategy(err error) bool {
	return Is(err, CodeUnknownStrategy)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var rangeErr *Error
	if errors.As(err, &rangeErr) {
		return rangeErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var rangeErr *Error
	if errors.As(err, &rangeErr) {
		return rangeErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
