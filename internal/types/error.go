package types

import (
	"fmt"
	"net/http"
)

// Error kinds reported to the client in the "type" field.
const (
	ErrTypeValidation = "validation"
	ErrTypeNotFound   = "not_found"
	ErrTypeConflict   = "conflict"
	ErrTypePartial    = "partial"
	ErrTypeInternal   = "internal"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ValidationError reports malformed or missing input, detected before any write.
func ValidationError(format string, args ...interface{}) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
		Type:    ErrTypeValidation,
	}
}

// NotFoundError covers both a missing record and an ownership miss: a farm
// that belongs to someone else reports exactly like one that does not exist.
func NotFoundError(format string, args ...interface{}) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf(format, args...),
		Type:    ErrTypeNotFound,
	}
}

// ConflictError reports a duplicate (farm, year) under the single-entry
// harvest workflow.
func ConflictError(format string, args ...interface{}) *CustomError {
	return &CustomError{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf(format, args...),
		Type:    ErrTypeConflict,
	}
}

// PartialError reports a multi-row operation where some sub-writes failed
// while others succeeded. The caller decides whether to retry the failed
// subset.
func PartialError(failed, total int, op string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: fmt.Sprintf("%s: %d of %d rows failed", op, failed, total),
		Type:    ErrTypePartial,
	}
}
