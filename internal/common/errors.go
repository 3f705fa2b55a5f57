package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Failure taxonomy. Every per-document or per-operation failure wraps one of
// these so callers can branch with errors.Is without string matching.
var (
	ErrExtraction      = errors.New("extraction failed")
	ErrUnsupportedType = fmt.Errorf("%w: unsupported file type", ErrExtraction)
	ErrClassifier      = errors.New("classifier request failed")
	ErrPlanParse       = errors.New("malformed execution plan")
	ErrInvalidInput    = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
