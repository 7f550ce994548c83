package services

import (
	"context"
	"strings"
	"time"

	"contacthub/internal/logger"
	"contacthub/internal/metrics"
	"contacthub/internal/models"
	"contacthub/internal/repositories"
	"contacthub/internal/validation"
	"contacthub/pkg/rabbitmq"
)

// EventPublisher delivers contact lifecycle events to interested consumers.
type EventPublisher interface {
	PublishContactEvent(evt rabbitmq.ContactEvent) error
}

// ValidationError reports every contact field that failed the schema rules.
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Errors.Error()
}

// Messages returns one human-readable message per violated field.
func (e *ValidationError) Messages() []string {
	return e.Errors.Messages()
}

// ContactService handles business logic related to contacts.
type ContactService struct {
	repo      repositories.ContactRepository
	publisher EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewContactService creates a new ContactService. publisher and m may be nil.
func NewContactService(repo repositories.ContactRepository, publisher EventPublisher, m *metrics.Metrics) *ContactService {
	return &ContactService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// ListContacts retrieves the contacts matching opts.
func (s *ContactService) ListContacts(ctx context.Context, opts models.ListOptions) ([]models.Contact, error) {
	return s.repo.List(ctx, opts.Normalized())
}

// CreateContact normalizes and validates in, then stores it. The returned
// error is a *ValidationError when any field breaks the schema rules.
func (s *ContactService) CreateContact(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	in = validation.Normalize(in)
	if errs := validation.ValidateContact(in); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	contact := &models.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ContactsCreated.Inc()
	}
	s.publish(rabbitmq.EventContactCreated, contact)
	return contact, nil
}

// DeleteContact removes the contact with the given ID and returns it.
func (s *ContactService) DeleteContact(ctx context.Context, id string) (*models.Contact, error) {
	contact, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ContactsDeleted.Inc()
	}
	s.publish(rabbitmq.EventContactDeleted, contact)
	return contact, nil
}

// publish never fails the calling operation; delivery problems are logged.
func (s *ContactService) publish(eventType string, contact *models.Contact) {
	log := logger.GetLogger()
	if s.publisher == nil {
		log.Debugw("Event publisher not configured, skipping event", "type", eventType, "contact_id", contact.ID)
		return
	}

	evt := rabbitmq.ContactEvent{
		Type:       eventType,
		ContactID:  contact.ID,
		Name:       contact.Name,
		Email:      contact.Email,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishContactEvent(evt); err != nil {
		log.Warnw("Failed to publish contact event",
			"type", eventType,
			"contact_id", contact.ID,
			"email", logger.MaskEmail(contact.Email),
			"error", err,
		)
		return
	}
	log.Debugw("Published contact event", "type", eventType, "contact_id", contact.ID)
}

// Ensure a *rabbitmq.Client satisfies EventPublisher.
var _ EventPublisher = (*rabbitmq.Client)(nil)
