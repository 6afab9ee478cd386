package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError codes.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the application error type carried from services to handlers.
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

// NewValidationError returns a client validation error (HTTP 400).
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewNotFoundError returns a missing-entity error (HTTP 404).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewUnauthorizedError returns an authentication error (HTTP 401).
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewForbiddenError returns an authorization error (HTTP 403).
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewInternalError wraps an unexpected error (HTTP 500). The underlying
// message is surfaced to the client as-is.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: err.Error(), Err: err}
}

// RespondWithError writes the uniform error envelope {success:false, error:...}.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	message := err.Error()
	var appErr *AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
