package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeInputFormat  ErrorType = "INPUT_FORMAT"
	ErrTypeEmptyDataset ErrorType = "EMPTY_DATASET"
	ErrTypeInvalidCell  ErrorType = "INVALID_CELL"
	ErrTypeUnreadable   ErrorType = "UNREADABLE_FILE"
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypeNotFound     ErrorType = "NOT_FOUND"
	ErrTypeExport       ErrorType = "EXPORT"
	ErrTypeConfig       ErrorType = "CONFIG"
)

// AppError represents an application-specific error. Message is safe to
// show to users; Cause carries the technical detail.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// StatusCode returns the HTTP status the error type maps to.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ErrTypeInputFormat, ErrTypeEmptyDataset, ErrTypeInvalidCell, ErrTypeUnreadable:
		return http.StatusUnprocessableEntity
	case ErrTypeValidation:
		return http.StatusBadRequest
	case ErrTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewInputFormatError reports a spreadsheet the dashboard cannot analyze.
func NewInputFormatError(cause error) *AppError {
	return NewAppError(ErrTypeInputFormat, "cannot analyze this file", cause)
}

// NewEmptyDatasetError reports an upload without usable rows.
func NewEmptyDatasetError(cause error) *AppError {
	return NewAppError(ErrTypeEmptyDataset, "no data to analyze", cause)
}

// NewInvalidCellError reports numeric cells that could not be read.
func NewInvalidCellError(message string, cause error) *AppError {
	return NewAppError(ErrTypeInvalidCell, message, cause)
}

// NewUnreadableFileError reports an upload that is not a workbook or CSV.
func NewUnreadableFileError(cause error) *AppError {
	return NewAppError(ErrTypeUnreadable, "the file is not a readable Excel workbook or CSV", cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewExportError reports a report that could not be produced.
func NewExportError(message string, cause error) *AppError {
	return NewAppError(ErrTypeExport, message, cause)
}
