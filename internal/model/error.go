package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeIOFailure         = "IO_FAILURE"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeDatabaseDisabled  = "DATABASE_DISABLED"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business error carrying a stable code and an optional cause.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError with the same code, so errors.Is(err, ErrInvalidInput)
// holds for every invalid-input failure regardless of its message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewInvalidInput reports malformed numeric input or a malformed persisted line.
func NewInvalidInput(message string, cause error) *DomainError {
	return &DomainError{Code: ErrCodeInvalidInput, Message: message, Err: cause}
}

// NewInvalidQuantity reports a non-positive transaction quantity. It is an
// INVALID_INPUT error; errors.Is cannot tell it from other invalid input.
func NewInvalidQuantity(quantity int) *DomainError {
	return &DomainError{Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Quantity must be greater than zero, got %d", quantity)}
}

// NewIOFailure reports a failure reading or writing a destination.
func NewIOFailure(message string, cause error) *DomainError {
	return &DomainError{Code: ErrCodeIOFailure, Message: message, Err: cause}
}

// Common domain errors
var (
	ErrInvalidInput      = NewDomainError(ErrCodeInvalidInput, "Invalid input")
	ErrIOFailure         = NewDomainError(ErrCodeIOFailure, "I/O failure")
	ErrInsufficientStock = NewDomainError(ErrCodeInsufficientStock, "Insufficient stock for sale")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrDatabaseDisabled  = NewDomainError(ErrCodeDatabaseDisabled, "Database persistence is not configured")
	ErrUnauthorised      = NewDomainError(ErrCodeUnauthorised, "Invalid username or password")
	ErrForbidden         = NewDomainError(ErrCodeForbidden, "Admin privileges required")
)
