package models

import "time"

// Contact is a person's submitted details. Records are created and deleted,
// never updated.
type Contact struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;index"`
	Phone     string    `json:"phone" gorm:"type:varchar(20);not null"`
	Message   string    `json:"message" gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName pins the collection name.
func (Contact) TableName() string {
	return "contacts"
}

// ContactInput is the caller-supplied part of a Contact.
type ContactInput struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Message string `json:"message,omitempty" form:"message"`
}

// SortOrder is the direction of a listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Sortable fields, keyed by their JSON name.
const (
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
	SortByName      = "name"
	SortByEmail     = "email"
	SortByPhone     = "phone"
)

// ListOptions carries the filter and ordering for listing contacts.
type ListOptions struct {
	// Search is matched case-insensitively as a literal substring of name,
	// email or phone. Empty matches everything.
	Search string
	SortBy string
	Order  SortOrder
}

// Normalized returns a copy with unknown sort fields and orders replaced by
// the defaults (createdAt, descending).
func (o ListOptions) Normalized() ListOptions {
	switch o.SortBy {
	case SortByCreatedAt, SortByUpdatedAt, SortByName, SortByEmail, SortByPhone:
	default:
		o.SortBy = SortByCreatedAt
	}
	if o.Order != SortAsc {
		o.Order = SortDesc
	}
	return o
}
