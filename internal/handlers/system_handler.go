package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Version is reported by the service banner.
const Version = "1.0.0"

// SystemHandler serves the banner, health check and unmatched routes.
type SystemHandler struct {
	now func() time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{now: time.Now}
}

// HandleRoot describes the running service.
func (h *SystemHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Contact Management API is running",
		"version": Version,
		"endpoints": fiber.Map{
			"contacts": "/api/contacts",
		},
	})
}

// HandleHealth reports liveness.
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   "API is healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// HandleNotFound answers every request no route matched.
func (h *SystemHandler) HandleNotFound(c *fiber.Ctx) error {
	return notFound("Route not found", nil)
}
