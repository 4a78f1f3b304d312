package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the application. Handlers map these onto HTTP
// statuses; everything else surfaces as an internal error.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUpstreamAuth = "UPSTREAM_AUTH_ERROR"
	CodeDecryption   = "DECRYPTION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the application error type carried from services up to the
// handler boundary, where it is converted into the JSON failure envelope.
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

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUpstreamAuthError(message string) *AppError {
	return &AppError{
		Code:    CodeUpstreamAuth,
		Message: message,
	}
}

func NewDecryptionError(err error) *AppError {
	return &AppError{
		Code:    CodeDecryption,
		Message: "Failed to decrypt payload",
		Err:     err,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
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

// HTTPStatus maps an error to the HTTP status of its failure envelope.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation, CodeUpstreamAuth, CodeDecryption:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the standard failure envelope for err, deriving the
// HTTP status from the error code. Internal causes are never echoed to clients.
func RespondWithError(c *fiber.Ctx, err error) error {
	message := "Internal server error"
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != CodeInternal {
		message = appErr.Message
	}
	return c.Status(HTTPStatus(err)).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// RespondWithData writes the standard success envelope.
func RespondWithData(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
