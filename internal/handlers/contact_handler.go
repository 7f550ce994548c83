package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"contacthub/internal/models"
	"contacthub/internal/repositories"
	"contacthub/internal/services"
	"contacthub/internal/validation"
)

// ContactHandler handles HTTP requests for contacts.
type ContactHandler struct {
	service *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service: service,
	}
}

// RegisterRoutes registers the contact routes with the Fiber router.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	contactRoutes := router.Group("/contacts")
	contactRoutes.Get("/", h.HandleGetContacts)
	contactRoutes.Post("/", h.HandleCreateContact)
	contactRoutes.Delete("/:id", h.HandleDeleteContact)
}

// HandleGetContacts lists contacts. Query parameters: search, sortBy
// (default createdAt) and order (asc|desc, default desc).
func (h *ContactHandler) HandleGetContacts(c *fiber.Ctx) error {
	opts := models.ListOptions{
		Search: c.Query("search"),
		SortBy: c.Query("sortBy", models.SortByCreatedAt),
		Order:  models.SortOrder(c.Query("order", string(models.SortDesc))),
	}

	contacts, err := h.service.ListContacts(c.UserContext(), opts)
	if err != nil {
		return internalError("Failed to fetch contacts", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(contacts),
		"data":    contacts,
	})
}

// HandleCreateContact validates the request body and creates a contact.
func (h *ContactHandler) HandleCreateContact(c *fiber.Ctx) error {
	var req models.ContactInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Invalid request body", err)
	}

	// The API never trusts client-side validation.
	if errs := validation.ValidateContact(validation.Normalize(req)); len(errs) > 0 {
		return validationFailed(errs.Messages())
	}

	contact, err := h.service.CreateContact(c.UserContext(), req)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return validationFailed(verr.Messages())
		case errors.Is(err, repositories.ErrDuplicate):
			return err
		default:
			return internalError("Failed to create contact", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Contact created successfully",
		"data":    contact,
	})
}

// HandleDeleteContact deletes a contact by its ID.
func (h *ContactHandler) HandleDeleteContact(c *fiber.Ctx) error {
	contact, err := h.service.DeleteContact(c.UserContext(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return notFound("Contact not found", err)
		case errors.Is(err, repositories.ErrInvalidID):
			return badRequest("Invalid contact ID", err)
		default:
			return internalError("Failed to delete contact", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Contact deleted successfully",
		"data":    contact,
	})
}
