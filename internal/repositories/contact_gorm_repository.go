package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"contacthub/internal/models"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

var _ ContactRepository = (*GORMContactRepository)(nil)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List retrieves the contacts matching opts from the database.
func (r *GORMContactRepository) List(ctx context.Context, opts models.ListOptions) ([]models.Contact, error) {
	opts = opts.Normalized()
	desc := opts.Order == models.SortDesc

	needle := strings.ToLower(opts.Search)
	// SQLite's LOWER only folds ASCII, so non-ASCII searches are matched
	// after the query.
	filterAfter := needle != "" && r.db.Dialector.Name() == "sqlite" && !isASCII(needle)

	q := r.db.WithContext(ctx).Model(&models.Contact{})
	if needle != "" && !filterAfter {
		pattern := "%" + likeEscaper.Replace(needle) + "%"
		q = q.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(phone) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumns[opts.SortBy]}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})

	var contacts []models.Contact
	if err := q.Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	if filterAfter {
		matched := contacts[:0]
		for _, c := range contacts {
			if matchesSearch(c, needle) {
				matched = append(matched, c)
			}
		}
		contacts = matched
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return contacts, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Create creates a new contact in the database.
func (r *GORMContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create contact: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// Delete deletes a contact by its ID and returns the removed record. The
// lookup and removal run in one transaction.
func (r *GORMContactRepository) Delete(ctx context.Context, id string) (*models.Contact, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var contact models.Contact
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&contact, "id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Contact{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete contact %s: %w", id, err)
	}
	return &contact, nil
}
