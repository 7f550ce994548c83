package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"contacthub/internal/logger"
	"contacthub/internal/repositories"
	"contacthub/internal/services"
)

// ErrorHandler is the single place where errors become responses. Known
// categories map to 400; anything else keeps its declared status or becomes 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	apiErr := translate(err)

	log := logger.GetLogger().With(
		"method", c.Method(),
		"path", c.Path(),
		"status", apiErr.Status,
		"request_id", c.Locals("requestid"),
	)
	if apiErr.Status >= fiber.StatusInternalServerError {
		log.Errorw(apiErr.Message, "error", err)
	} else {
		log.Infow(apiErr.Message, "error", err)
	}

	return c.Status(apiErr.Status).JSON(apiErr.body())
}

func translate(err error) *APIError {
	var apiErr *APIError
	var verr *services.ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &verr):
		return &APIError{Status: fiber.StatusBadRequest, Message: "Validation Error", Errors: verr.Messages(), Err: err}
	case errors.Is(err, repositories.ErrInvalidID):
		return badRequest("Invalid ID format", err)
	case errors.Is(err, repositories.ErrDuplicate):
		return badRequest("Duplicate field value entered", err)
	case errors.As(err, &fiberErr):
		return &APIError{Status: fiberErr.Code, Message: fiberErr.Message, Err: err}
	default:
		return &APIError{Status: fiber.StatusInternalServerError, Message: "Internal Server Error", Err: err}
	}
}
