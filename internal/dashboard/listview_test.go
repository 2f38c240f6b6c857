package dashboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("School %02d", i))
	}

	return out
}

func identity(s string) string { return s }

func TestListViewPageCount(t *testing.T) {
	tests := []struct {
		items     int
		wantPages int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{25, 3},
		{30, 3},
	}

	for _, tt := range tests {
		view := NewListView(names(tt.items), identity, DefaultPageSize)
		assert.Equal(t, tt.wantPages, view.TotalPages(), "items=%d", tt.items)
	}
}

func TestListViewVisibleWindow(t *testing.T) {
	view := NewListView(names(25), identity, DefaultPageSize)

	require.Len(t, view.Visible(), 10)
	assert.Equal(t, "School 01", view.Visible()[0])

	view.Next()
	require.Len(t, view.Visible(), 10)
	assert.Equal(t, "School 11", view.Visible()[0])

	view.Next()
	require.Len(t, view.Visible(), 5)
	assert.Equal(t, "School 21", view.Visible()[0])
}

func TestListViewBounds(t *testing.T) {
	view := NewListView(names(25), identity, DefaultPageSize)

	assert.False(t, view.HasPrev())
	view.Prev()
	assert.Equal(t, 1, view.Page())

	view.SetPage(3)
	assert.False(t, view.HasNext())
	view.Next()
	assert.Equal(t, 3, view.Page())

	view.SetPage(99)
	assert.Equal(t, 3, view.Page())
	view.SetPage(-4)
	assert.Equal(t, 1, view.Page())
}

func TestListViewFilterIsCaseInsensitiveSubstring(t *testing.T) {
	view := NewListView([]string{"Lusaka Primary", "Kitwe Secondary", "Ndola Primary"}, identity, DefaultPageSize)

	view.SetFilter("PRIMARY")
	assert.Equal(t, 2, view.Total())
	assert.Equal(t, []string{"Lusaka Primary", "Ndola Primary"}, view.Visible())

	view.SetFilter("kit")
	assert.Equal(t, []string{"Kitwe Secondary"}, view.Visible())
}

func TestListViewFilterResetsPage(t *testing.T) {
	view := NewListView(names(25), identity, DefaultPageSize)
	view.SetPage(3)

	view.SetFilter("School")
	assert.Equal(t, 1, view.Page())

	// Re-applying the same filter must not move the page.
	view.SetPage(2)
	view.SetFilter("School")
	assert.Equal(t, 2, view.Page())
}

func TestListViewEmptyFilter(t *testing.T) {
	view := NewListView(names(5), identity, DefaultPageSize)

	view.SetFilter("zzz")
	assert.True(t, view.Empty())
	assert.Equal(t, 1, view.TotalPages())
	assert.Empty(t, view.Visible())

	// Clearing the filter restores the full list.
	view.SetFilter("")
	assert.Equal(t, 5, view.Total())
}

func TestListViewSetItemsClampsPage(t *testing.T) {
	view := NewListView(names(25), identity, DefaultPageSize)
	view.SetPage(3)

	view.SetItems(names(8))
	assert.Equal(t, 1, view.Page())
	assert.Len(t, view.Visible(), 8)
}
