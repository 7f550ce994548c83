package repositories

import "errors"

var (
	// ErrNotFound is returned when no contact has the requested identifier.
	ErrNotFound = errors.New("contact not found")
	// ErrInvalidID is returned when an identifier is not a well-formed UUID.
	ErrInvalidID = errors.New("invalid contact identifier")
	// ErrDuplicate is returned when the store rejects a write on a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate field value")
)
