package view

import (
	"testing"

	"merchantdesk/internal/model"
	"merchantdesk/internal/overlay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOverlay satisfies OverlayReader with a fixed entry map
type fakeOverlay struct {
	entries map[uint]overlay.Entry
}

func (f *fakeOverlay) Get(id uint) overlay.Entry {
	if e, ok := f.entries[id]; ok {
		return e
	}
	return overlay.DefaultEntry()
}

func newFakeOverlay() *fakeOverlay {
	return &fakeOverlay{entries: make(map[uint]overlay.Entry)}
}

func testMerchants() []model.Merchant {
	return []model.Merchant{
		{ID: 1, MerchantName: "alpha", Country: "France"},
		{ID: 2, MerchantName: "Bravo", Country: "Germany"},
		{ID: 3, MerchantName: "Charlie", Country: "france"},
		{ID: 4, MerchantName: "Zed", Country: "Japan"},
	}
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.MerchantName
	}
	return out
}

func TestRowsSortByNameCaseInsensitive(t *testing.T) {
	merchants := []model.Merchant{
		{ID: 2, MerchantName: "Bravo", Country: "DE"},
		{ID: 1, MerchantName: "alpha", Country: "FR"},
	}
	ov := newFakeOverlay()

	q := Query{SortKey: SortByName}
	rows := Rows(merchants, ov, q)
	assert.Equal(t, []string{"alpha", "Bravo"}, names(rows))

	q.ToggleSort(SortByName)
	assert.True(t, q.Descending)
	rows = Rows(merchants, ov, q)
	assert.Equal(t, []string{"Bravo", "alpha"}, names(rows))
}

func TestToggleSortSwitchingColumnResetsDirection(t *testing.T) {
	q := Query{SortKey: SortByName, Descending: true}
	q.ToggleSort(SortByCountry)
	assert.Equal(t, SortByCountry, q.SortKey)
	assert.False(t, q.Descending)
}

func TestRowsFavoritesFirst(t *testing.T) {
	merchants := []model.Merchant{
		{ID: 1, MerchantName: "Alpha", Country: "FR"},
		{ID: 2, MerchantName: "Zed", Country: "JP"},
	}
	ov := newFakeOverlay()
	ov.entries[2] = overlay.Entry{Favorite: true, Category: overlay.CategoryOther, Status: overlay.StatusActive}

	rows := Rows(merchants, ov, Query{SortKey: SortByName})
	require.Len(t, rows, 2)
	assert.Equal(t, "Zed", rows[0].MerchantName, "favorited row should lead despite sorting last by name")
	assert.Equal(t, "Alpha", rows[1].MerchantName)
}

func TestRowsFavoritesFirstSuppressedWhenFavoritesOnly(t *testing.T) {
	merchants := testMerchants()
	ov := newFakeOverlay()
	ov.entries[2] = overlay.Entry{Favorite: true, Category: overlay.CategoryOther, Status: overlay.StatusActive}
	ov.entries[4] = overlay.Entry{Favorite: true, Category: overlay.CategoryOther, Status: overlay.StatusActive}

	rows := Rows(merchants, ov, Query{FavoritesOnly: true, SortKey: SortByName})
	assert.Equal(t, []string{"Bravo", "Zed"}, names(rows))
}

func TestRowsSearchMatchesNameOrCountry(t *testing.T) {
	merchants := testMerchants()
	ov := newFakeOverlay()

	rows := Rows(merchants, ov, Query{Search: "FRAN"})
	assert.Equal(t, []string{"alpha", "Charlie"}, names(rows))

	rows = Rows(merchants, ov, Query{Search: "zed"})
	assert.Equal(t, []string{"Zed"}, names(rows))

	rows = Rows(merchants, ov, Query{Search: "nowhere"})
	assert.Empty(t, rows)
}

func TestRowsFiltersCompose(t *testing.T) {
	merchants := testMerchants()
	ov := newFakeOverlay()
	ov.entries[1] = overlay.Entry{Favorite: true, Category: overlay.CategoryRetail, Status: overlay.StatusActive}
	ov.entries[3] = overlay.Entry{Favorite: true, Category: overlay.CategoryRetail, Status: overlay.StatusPending}

	q := Query{
		Search:        "fran",
		Category:      string(overlay.CategoryRetail),
		Status:        string(overlay.StatusActive),
		FavoritesOnly: true,
	}
	rows := Rows(merchants, ov, q)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(1), rows[0].ID)
}

func TestRowsAllFilterMatchesEverything(t *testing.T) {
	merchants := testMerchants()
	ov := newFakeOverlay()

	rows := Rows(merchants, ov, Query{Category: FilterAll, Status: FilterAll})
	assert.Len(t, rows, len(merchants))
}

func TestRowsDeterministic(t *testing.T) {
	merchants := testMerchants()
	ov := newFakeOverlay()
	ov.entries[2] = overlay.Entry{Favorite: true, Category: overlay.CategoryFood, Status: overlay.StatusInactive}

	q := Query{SortKey: SortByCountry}
	first := Rows(merchants, ov, q)
	second := Rows(merchants, ov, q)
	assert.Equal(t, first, second)
}

func TestRowsStableOnEqualKeys(t *testing.T) {
	merchants := []model.Merchant{
		{ID: 10, MerchantName: "Same", Country: "FR"},
		{ID: 11, MerchantName: "same", Country: "DE"},
		{ID: 12, MerchantName: "SAME", Country: "JP"},
	}
	ov := newFakeOverlay()

	rows := Rows(merchants, ov, Query{SortKey: SortByName})
	assert.Equal(t, []uint{10, 11, 12}, []uint{rows[0].ID, rows[1].ID, rows[2].ID})
}

func TestRowsDefaultSortIsID(t *testing.T) {
	merchants := []model.Merchant{
		{ID: 3, MerchantName: "C", Country: "FR"},
		{ID: 1, MerchantName: "A", Country: "FR"},
		{ID: 2, MerchantName: "B", Country: "FR"},
	}
	ov := newFakeOverlay()

	rows := Rows(merchants, ov, Query{})
	assert.Equal(t, []string{"A", "B", "C"}, names(rows))
}

func TestComputeStats(t *testing.T) {
	merchants := testMerchants()
	ov := newFakeOverlay()
	ov.entries[1] = overlay.Entry{Favorite: true, Category: overlay.CategoryRetail, Status: overlay.StatusActive}
	ov.entries[2] = overlay.Entry{Favorite: false, Category: overlay.CategoryOther, Status: overlay.StatusInactive}
	// Orphaned favorite: no merchant with ID 99 in the snapshot.
	ov.entries[99] = overlay.Entry{Favorite: true, Category: overlay.CategoryOther, Status: overlay.StatusActive}

	stats := ComputeStats(merchants, ov, 2)
	assert.Equal(t, 4, stats.Total)
	// "France", "Germany", "france", "Japan": country identity is case-sensitive.
	assert.Equal(t, 4, stats.Countries)
	assert.Equal(t, 1, stats.Favorites, "orphaned favorites must not count")
	assert.Equal(t, 3, stats.Active)
	assert.Equal(t, 2, stats.Visible)
}

func TestDuplicateWarning(t *testing.T) {
	merchants := testMerchants()

	assert.NotEmpty(t, DuplicateWarning("ALPHA", 0, merchants))
	assert.Empty(t, DuplicateWarning("alpha", 1, merchants), "editing the record itself is not a duplicate")
	assert.Empty(t, DuplicateWarning("a", 0, merchants), "short names are not checked")
	assert.Empty(t, DuplicateWarning("Delta", 0, merchants))
}
