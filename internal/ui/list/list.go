// Package list derives the visible contact rows from the client's full list
// and tracks the delete confirmation flow.
package list

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"contacthub/internal/models"
)

type Sort string

const (
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
	SortNameAsc  Sort = "name-asc"
	SortNameDesc Sort = "name-desc"
)

// Sorts is the cycle order of the sort selector.
var Sorts = []Sort{SortNewest, SortOldest, SortNameAsc, SortNameDesc}

func (s Sort) Label() string {
	switch s {
	case SortOldest:
		return "Oldest first"
	case SortNameAsc:
		return "Name (A-Z)"
	case SortNameDesc:
		return "Name (Z-A)"
	default:
		return "Newest first"
	}
}

// Next returns the sort after s in Sorts, wrapping around.
func (s Sort) Next() Sort {
	for i, candidate := range Sorts {
		if candidate == s {
			return Sorts[(i+1)%len(Sorts)]
		}
	}
	return SortNewest
}

// View is the list's local UI state.
type View struct {
	Search string
	Sort   Sort
	// DeletingID is the row awaiting confirmation or being deleted.
	DeletingID string
	confirmed  bool
}

func NewView() *View {
	return &View{Sort: SortNewest}
}

// HasSearch reports whether a non-blank search is active.
func (v *View) HasSearch() bool {
	return strings.TrimSpace(v.Search) != ""
}

// Derive filters contacts by the search text and sorts the result. The input
// slice is not modified.
func (v *View) Derive(contacts []models.Contact) []models.Contact {
	result := make([]models.Contact, 0, len(contacts))
	if v.HasSearch() {
		query := strings.ToLower(v.Search)
		for _, c := range contacts {
			if strings.Contains(strings.ToLower(c.Name), query) ||
				strings.Contains(strings.ToLower(c.Email), query) ||
				strings.Contains(strings.ToLower(c.Phone), query) {
				result = append(result, c)
			}
		}
	} else {
		result = append(result, contacts...)
	}

	var less func(a, b models.Contact) bool
	switch v.Sort {
	case SortOldest:
		less = func(a, b models.Contact) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortNameAsc:
		less = func(a, b models.Contact) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortNameDesc:
		less = func(a, b models.Contact) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	default:
		less = func(a, b models.Contact) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result
}

type EmptyKind int

const (
	NotEmpty EmptyKind = iota
	EmptyLoading
	EmptyNoContacts
	EmptyNoMatches
)

// Empty describes the placeholder shown instead of rows.
type Empty struct {
	Kind  EmptyKind
	Title string
	Hint  string
}

// EmptyState picks the placeholder for the current render. Kind is NotEmpty
// when there are rows to show.
func (v *View) EmptyState(loading bool, total, visible int) Empty {
	switch {
	case loading:
		return Empty{Kind: EmptyLoading, Title: "Loading contacts..."}
	case visible > 0:
		return Empty{Kind: NotEmpty}
	case v.HasSearch() || total > 0:
		return Empty{
			Kind:  EmptyNoMatches,
			Title: "No matches found",
			Hint:  "Try adjusting your search to find what you're looking for",
		}
	default:
		return Empty{
			Kind:  EmptyNoContacts,
			Title: "No contacts yet",
			Hint:  "Start by adding your first contact using the form",
		}
	}
}

// RequestDelete starts the confirmation step for id. It is ignored while
// another delete is running.
func (v *View) RequestDelete(id string) bool {
	if v.Busy() {
		return false
	}
	v.DeletingID = id
	return true
}

// Pending reports whether a delete awaits confirmation.
func (v *View) Pending() bool {
	return v.DeletingID != "" && !v.confirmed
}

// Busy reports whether a confirmed delete is in flight.
func (v *View) Busy() bool {
	return v.DeletingID != "" && v.confirmed
}

// RowBusy reports whether id is the row being deleted.
func (v *View) RowBusy(id string) bool {
	return v.Busy() && v.DeletingID == id
}

// CancelDelete abandons a pending confirmation.
func (v *View) CancelDelete() {
	if v.Pending() {
		v.DeletingID = ""
	}
}

// Confirm marks the pending delete as in flight and returns its id. Finish
// must follow.
func (v *View) Confirm() (string, bool) {
	if !v.Pending() {
		return "", false
	}
	v.confirmed = true
	return v.DeletingID, true
}

// Finish clears the in-flight delete.
func (v *View) Finish() {
	v.DeletingID = ""
	v.confirmed = false
}

// ConfirmDelete runs fn for the pending row, keeping it busy for the duration.
func (v *View) ConfirmDelete(ctx context.Context, fn func(ctx context.Context, id string) bool) bool {
	id, ok := v.Confirm()
	if !ok {
		return false
	}
	defer v.Finish()
	return fn(ctx, id)
}

// Initials returns up to two upper-case initials, one per word.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		b.WriteRune(unicode.ToUpper(r))
		n++
		if n == 2 {
			break
		}
	}
	return b.String()
}

// RelativeDate formats t for the contact row relative to now.
func RelativeDate(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case t.Year() != now.Year():
		return t.Format("Jan 2, 2006")
	default:
		return t.Format("Jan 2")
	}
}
