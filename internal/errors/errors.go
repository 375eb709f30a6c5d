package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewPoolError creates a new connection pool error
func NewPoolError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypePool,
		Message: fmt.Sprintf("connection pool operation failed: %s", operation),
		Code:    "POOL_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewMigrationMissingError reports a gap in the ordered migration scripts
func NewMigrationMissingError(index int) *AppError {
	return &AppError{
		Type:    ErrorTypeMigration,
		Message: fmt.Sprintf("migration %d does not exist", index),
		Code:    "MIGRATION_MISSING",
		Context: map[string]interface{}{
			"index": index,
		},
	}
}

// NewMigrationError creates a new migration error
func NewMigrationError(index int, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeMigration,
		Message: fmt.Sprintf("migration %d failed", index),
		Code:    "MIGRATION_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"index": index,
		},
	}
}

// NewDataDirError creates an error for a data directory that could not be
// created or used
func NewDataDirError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDataDir,
		Message: fmt.Sprintf("data directory unavailable: %s", path),
		Code:    "DATA_DIR_UNAVAILABLE",
		Cause:   cause,
		Context: map[string]interface{}{
			"path": path,
		},
	}
}

// NewUnsupportedSourceError reports a source representation the temporal
// codec cannot decode
func NewUnsupportedSourceError(repr string) *AppError {
	return &AppError{
		Type:    ErrorTypeDecode,
		Message: fmt.Sprintf("unsupported source representation: %s", repr),
		Code:    "UNSUPPORTED_SOURCE",
		Context: map[string]interface{}{
			"representation": repr,
		},
	}
}

// NewTemporalParseError reports a textual temporal value that did not match
// its expected format
func NewTemporalParseError(format string, value string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDecode,
		Message: fmt.Sprintf("cannot parse %q as %s", value, format),
		Code:    "TEMPORAL_PARSE",
		Cause:   cause,
		Context: map[string]interface{}{
			"format": format,
			"value":  value,
		},
	}
}

// NewTransportError creates a new transport error
func NewTransportError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Message: fmt.Sprintf("transport failure: %s", operation),
		Code:    "TRANSPORT_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewSplitError reports a time response body that does not contain exactly
// two newline separated fields
func NewSplitError(body string) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: "time response is not two newline separated values",
		Code:    "RESPONSE_SPLIT",
		Context: map[string]interface{}{
			"body": body,
		},
	}
}

// NewIntParseError reports a field that could not be parsed as a decimal
// integer
func NewIntParseError(value string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: fmt.Sprintf("cannot parse %q as integer", value),
		Code:    "INTEGER_PARSE",
		Cause:   cause,
		Context: map[string]interface{}{
			"value": value,
		},
	}
}

// NewInstantRangeError reports a microsecond count outside the representable
// instant range
func NewInstantRangeError(micros int64) *AppError {
	return &AppError{
		Type:    ErrorTypeClock,
		Message: fmt.Sprintf("microsecond count %d is out of instant range", micros),
		Code:    "INSTANT_RANGE",
		Context: map[string]interface{}{
			"micros": micros,
		},
	}
}

// NewNoOffsetError reports that no clock offset is cached
func NewNoOffsetError() *AppError {
	return &AppError{
		Type:    ErrorTypeClock,
		Message: "no clock offset cached",
		Code:    "NO_OFFSET_CACHED",
		Context: make(map[string]interface{}),
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeDatabase, ErrorTypePool, ErrorTypeMigration:
			return "A database error occurred. Please try again."
		case ErrorTypeDataDir:
			return "The data directory could not be used. Check its permissions."
		case ErrorTypeDecode:
			return appErr.Message
		case ErrorTypeTransport, ErrorTypeParse, ErrorTypeClock:
			return "The time service could not be reached. Working from the local clock."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false // These are user errors, not system errors
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
