package list_test

import (
	"context"
	"testing"
	"time"

	"contacthub/internal/models"
	"contacthub/internal/ui/list"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func sample() []models.Contact {
	return []models.Contact{
		{ID: "1", Name: "bob Jones", Email: "bob@example.com", Phone: "555-0101", CreatedAt: base.Add(-2 * time.Hour)},
		{ID: "2", Name: "Alice Smith", Email: "alice@example.com", Phone: "555-0100", CreatedAt: base},
		{ID: "3", Name: "Carol White", Email: "carol@Malice.org", Phone: "+44 20 7946 0958", CreatedAt: base.Add(-time.Hour)},
	}
}

func names(contacts []models.Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Name)
	}
	return out
}

func TestView_DeriveSorts(t *testing.T) {
	tests := []struct {
		sort list.Sort
		want []string
	}{
		{list.SortNewest, []string{"Alice Smith", "Carol White", "bob Jones"}},
		{list.SortOldest, []string{"bob Jones", "Carol White", "Alice Smith"}},
		{list.SortNameAsc, []string{"Alice Smith", "bob Jones", "Carol White"}},
		{list.SortNameDesc, []string{"Carol White", "bob Jones", "Alice Smith"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			v := list.NewView()
			v.Sort = tt.sort
			input := sample()
			assert.Equal(t, tt.want, names(v.Derive(input)))
			assert.Equal(t, "bob Jones", input[0].Name, "input must not be reordered")
		})
	}
}

func TestView_DeriveFilters(t *testing.T) {
	v := list.NewView()

	v.Search = "ALICE"
	assert.Equal(t, []string{"Alice Smith", "Carol White"}, names(v.Derive(sample())))

	v.Search = "7946"
	assert.Equal(t, []string{"Carol White"}, names(v.Derive(sample())))

	v.Search = "   "
	assert.Len(t, v.Derive(sample()), 3)

	v.Search = "zzz"
	assert.Empty(t, v.Derive(sample()))
}

func TestView_NameSortIsStable(t *testing.T) {
	v := list.NewView()
	v.Sort = list.SortNameAsc
	contacts := []models.Contact{
		{ID: "a", Name: "sam"},
		{ID: "b", Name: "Sam"},
		{ID: "c", Name: "SAM"},
	}

	got := v.Derive(contacts)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestView_EmptyState(t *testing.T) {
	v := list.NewView()

	assert.Equal(t, list.EmptyLoading, v.EmptyState(true, 0, 0).Kind)
	assert.Equal(t, list.NotEmpty, v.EmptyState(false, 3, 3).Kind)

	empty := v.EmptyState(false, 0, 0)
	assert.Equal(t, list.EmptyNoContacts, empty.Kind)
	assert.Equal(t, "No contacts yet", empty.Title)

	v.Search = "nobody"
	empty = v.EmptyState(false, 3, 0)
	assert.Equal(t, list.EmptyNoMatches, empty.Kind)
	assert.Equal(t, "No matches found", empty.Title)
}

func TestSort_Next(t *testing.T) {
	assert.Equal(t, list.SortOldest, list.SortNewest.Next())
	assert.Equal(t, list.SortNewest, list.SortNameDesc.Next())
	assert.Equal(t, list.SortNewest, list.Sort("bogus").Next())
	assert.Equal(t, "Name (A-Z)", list.SortNameAsc.Label())
}

func TestView_DeleteConfirmation(t *testing.T) {
	v := list.NewView()

	require.True(t, v.RequestDelete("2"))
	assert.True(t, v.Pending())
	assert.False(t, v.RowBusy("2"))

	v.CancelDelete()
	assert.False(t, v.Pending())
	assert.Equal(t, "", v.DeletingID)

	called := false
	assert.False(t, v.ConfirmDelete(context.Background(), func(context.Context, string) bool {
		called = true
		return true
	}))
	assert.False(t, called, "nothing pending")

	require.True(t, v.RequestDelete("2"))
	ok := v.ConfirmDelete(context.Background(), func(_ context.Context, id string) bool {
		assert.Equal(t, "2", id)
		assert.True(t, v.RowBusy("2"))
		assert.False(t, v.RowBusy("1"))
		assert.False(t, v.RequestDelete("1"), "one delete at a time")
		return true
	})
	assert.True(t, ok)
	assert.False(t, v.Busy())
	assert.Equal(t, "", v.DeletingID)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AS", list.Initials("alice smith"))
	assert.Equal(t, "JR", list.Initials("John Ronald Reuel Tolkien"))
	assert.Equal(t, "C", list.Initials("  cher "))
	assert.Equal(t, "", list.Initials(""))
	assert.Equal(t, "ÉZ", list.Initials("émile zola"))
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", list.RelativeDate(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Yesterday", list.RelativeDate(now.Add(-30*time.Hour), now))
	assert.Equal(t, "3 days ago", list.RelativeDate(now.Add(-3*24*time.Hour), now))
	assert.Equal(t, "Feb 20", list.RelativeDate(time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Dec 24, 2023", list.RelativeDate(time.Date(2023, 12, 24, 9, 0, 0, 0, time.UTC), now))
}
