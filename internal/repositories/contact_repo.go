package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"contacthub/internal/models"
)

// ContactRepository defines the interface for contact data access.
type ContactRepository interface {
	// List returns every contact matching opts.Search, ordered by opts.SortBy.
	List(ctx context.Context, opts models.ListOptions) ([]models.Contact, error)
	// Create assigns an ID and timestamps to contact and stores it.
	Create(ctx context.Context, contact *models.Contact) error
	// Delete removes the contact with the given ID and returns it.
	Delete(ctx context.Context, id string) (*models.Contact, error)
}

// checkID rejects identifiers the store could never have issued.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// sortColumns maps the JSON sort field to its column.
var sortColumns = map[string]string{
	models.SortByCreatedAt: "created_at",
	models.SortByUpdatedAt: "updated_at",
	models.SortByName:      "name",
	models.SortByEmail:     "email",
	models.SortByPhone:     "phone",
}

// matchesSearch reports whether needle, already lowercased, occurs in the
// contact's name, email or phone under Unicode case folding.
func matchesSearch(c models.Contact, needle string) bool {
	return needle == "" ||
		strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.Email), needle) ||
		strings.Contains(strings.ToLower(c.Phone), needle)
}
