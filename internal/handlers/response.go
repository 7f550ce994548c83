package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// APIError is an error that already knows its HTTP status and response body.
// Handlers return it and ErrorHandler writes it.
type APIError struct {
	Status  int
	Message string
	// Errors lists per-field validation messages.
	Errors []string
	// Detail is diagnostic text exposed as the "error" field.
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) body() fiber.Map {
	body := fiber.Map{
		"success": false,
		"message": e.Message,
	}
	if len(e.Errors) > 0 {
		body["errors"] = e.Errors
	}
	if e.Detail != "" {
		body["error"] = e.Detail
	}
	return body
}

func badRequest(message string, err error) *APIError {
	return &APIError{Status: fiber.StatusBadRequest, Message: message, Err: err}
}

func notFound(message string, err error) *APIError {
	return &APIError{Status: fiber.StatusNotFound, Message: message, Err: err}
}

func internalError(message string, err error) *APIError {
	return &APIError{Status: fiber.StatusInternalServerError, Message: message, Detail: err.Error(), Err: err}
}

func validationFailed(messages []string) *APIError {
	return &APIError{Status: fiber.StatusBadRequest, Message: "Validation failed", Errors: messages}
}
