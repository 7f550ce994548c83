package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"contacthub/internal/models"
)

// MemoryContactRepository is an in-memory implementation of ContactRepository.
type MemoryContactRepository struct {
	contacts map[string]models.Contact
	mu       sync.RWMutex
	now      func() time.Time
}

// NewMemoryContactRepository creates a new instance of MemoryContactRepository.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{
		contacts: make(map[string]models.Contact),
		now:      time.Now,
	}
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

// List returns the contacts matching opts.
func (r *MemoryContactRepository) List(_ context.Context, opts models.ListOptions) ([]models.Contact, error) {
	opts = opts.Normalized()
	needle := strings.ToLower(opts.Search)

	r.mu.RLock()
	result := make([]models.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		if matchesSearch(c, needle) {
			result = append(result, c)
		}
	}
	r.mu.RUnlock()

	less := fieldLess(opts.SortBy)
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if opts.Order == models.SortDesc {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID < b.ID
	})
	return result, nil
}

func fieldLess(field string) func(a, b models.Contact) bool {
	switch field {
	case models.SortByUpdatedAt:
		return func(a, b models.Contact) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case models.SortByName:
		return func(a, b models.Contact) bool { return a.Name < b.Name }
	case models.SortByEmail:
		return func(a, b models.Contact) bool { return a.Email < b.Email }
	case models.SortByPhone:
		return func(a, b models.Contact) bool { return a.Phone < b.Phone }
	default:
		return func(a, b models.Contact) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

// Create adds a new contact.
func (r *MemoryContactRepository) Create(_ context.Context, contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if _, exists := r.contacts[contact.ID]; exists {
		return fmt.Errorf("failed to create contact: %w", ErrDuplicate)
	}
	now := r.now()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	if contact.UpdatedAt.IsZero() {
		contact.UpdatedAt = now
	}
	r.contacts[contact.ID] = *contact
	return nil
}

// Delete removes a contact by its ID.
func (r *MemoryContactRepository) Delete(_ context.Context, id string) (*models.Contact, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	contact, ok := r.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
	}
	delete(r.contacts, id)
	return &contact, nil
}
