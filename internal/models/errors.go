package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the application error taxonomy. Every code is
// recoverable at the HTTP boundary; none is fatal to the process.
const (
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeDuplicateTitle     = "DUPLICATE_TITLE"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
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

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// Predefined error constructors

func NewDuplicateEmailError(email string) *AppError {
	return &AppError{
		Code:    CodeDuplicateEmail,
		Message: fmt.Sprintf("An account with email %q already exists", email),
	}
}

func NewDuplicateTitleError(title string) *AppError {
	return &AppError{
		Code:    CodeDuplicateTitle,
		Message: fmt.Sprintf("A post titled %q already exists", title),
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewInvalidCredentialsError deliberately collapses "unknown email"
// and "wrong password" into one message to avoid account enumeration.
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid email or password",
	}
}

func NewUnauthenticatedError() *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: "Authentication required",
	}
}

// NewForbiddenError maps to an explicit "access denied" response,
// distinct from not-found: the resource exists but access is refused.
func NewForbiddenError() *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: "Access denied",
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// statusForCode maps error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case CodeDuplicateEmail, CodeDuplicateTitle:
		return fiber.StatusConflict
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeInvalidCredentials, CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes a standardized error response. AppErrors are
// mapped to their HTTP status by code; anything else is a 500.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		response := ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		// Only internal errors carry a wrapped cause worth surfacing.
		if appErr.Err != nil && appErr.Code == CodeInternal {
			response.Details = appErr.Err.Error()
		}
		return c.Status(statusForCode(appErr.Code)).JSON(response)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: err.Error(),
	})
}
