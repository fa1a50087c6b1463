// Package view merges the remote merchant snapshot with the local overlay
// and derives everything the UI shows: filtered/sorted rows, summary stats,
// and the advisory duplicate warning. Every function here is pure; the same
// inputs always produce the same output, and nothing is cached.
package view

import (
	"fmt"
	"sort"
	"strings"

	"merchantdesk/internal/model"
	"merchantdesk/internal/overlay"
)

// SortKey names a sortable column
type SortKey string

const (
	SortByID      SortKey = "id"
	SortByName    SortKey = "merchant_name"
	SortByCountry SortKey = "country"
)

// FilterAll is the category/status filter value that matches everything
const FilterAll = "All"

// Query captures the current search, filter, and sort selections
type Query struct {
	Search        string
	Category      string // FilterAll or empty matches every category
	Status        string // FilterAll or empty matches every status
	FavoritesOnly bool
	SortKey       SortKey
	Descending    bool
}

// ToggleSort selects a sort column. Selecting the column already active
// flips the direction; selecting a new column resets to ascending.
func (q *Query) ToggleSort(key SortKey) {
	if q.SortKey == key && !q.Descending {
		q.Descending = true
		return
	}
	q.SortKey = key
	q.Descending = false
}

// Row is one rendered merchant: the remote record joined with its overlay
// attributes.
type Row struct {
	model.Merchant
	Favorite bool
	Category overlay.Category
	Status   overlay.Status
}

// OverlayReader is the read side of the overlay store
type OverlayReader interface {
	Get(id uint) overlay.Entry
}

// Rows merges merchants with their overlay entries, applies the query's
// filters, and sorts the result. Unless the favorites-only filter is active,
// favorited rows are pulled ahead of the rest regardless of sort column.
func Rows(merchants []model.Merchant, ov OverlayReader, q Query) []Row {
	rows := make([]Row, 0, len(merchants))
	for _, m := range merchants {
		entry := ov.Get(m.ID)
		row := Row{
			Merchant: m,
			Favorite: entry.Favorite,
			Category: entry.Category,
			Status:   entry.Status,
		}
		if matches(row, q) {
			rows = append(rows, row)
		}
	}

	sortKey := q.SortKey
	if sortKey == "" {
		sortKey = SortByID
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		// Favorites first, except when every visible row is already a
		// favorite.
		if !q.FavoritesOnly && a.Favorite != b.Favorite {
			return a.Favorite
		}

		var less, greater bool
		switch sortKey {
		case SortByName:
			av, bv := strings.ToLower(a.MerchantName), strings.ToLower(b.MerchantName)
			less, greater = av < bv, av > bv
		case SortByCountry:
			av, bv := strings.ToLower(a.Country), strings.ToLower(b.Country)
			less, greater = av < bv, av > bv
		default:
			less, greater = a.ID < b.ID, a.ID > b.ID
		}

		if q.Descending {
			return greater
		}
		return less
	})

	return rows
}

func matches(row Row, q Query) bool {
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(row.MerchantName), term) &&
			!strings.Contains(strings.ToLower(row.Country), term) {
			return false
		}
	}
	if q.FavoritesOnly && !row.Favorite {
		return false
	}
	if q.Category != "" && q.Category != FilterAll && string(row.Category) != q.Category {
		return false
	}
	if q.Status != "" && q.Status != FilterAll && string(row.Status) != q.Status {
		return false
	}
	return true
}

// Stats summarizes the current snapshot
type Stats struct {
	Total     int // merchants in the remote snapshot
	Countries int // distinct countries, exact string identity
	Favorites int // favorited IDs still present in the snapshot
	Active    int // merchants whose overlay status is Active
	Visible   int // rows surviving the current filters
}

// ComputeStats derives the summary numbers from the snapshot and overlay.
// Orphaned favorites (IDs no longer in the snapshot) do not count.
func ComputeStats(merchants []model.Merchant, ov OverlayReader, visible int) Stats {
	countries := make(map[string]struct{}, len(merchants))
	favorites := 0
	active := 0
	for _, m := range merchants {
		countries[m.Country] = struct{}{}
		entry := ov.Get(m.ID)
		if entry.Favorite {
			favorites++
		}
		if entry.Status == overlay.StatusActive {
			active++
		}
	}
	return Stats{
		Total:     len(merchants),
		Countries: len(countries),
		Favorites: favorites,
		Active:    active,
		Visible:   visible,
	}
}

// DuplicateWarning returns a non-blocking warning when name matches another
// merchant's name case-insensitively. The check is advisory: the store
// itself never rejects duplicates. excludeID skips the record being edited;
// pass 0 when composing a new merchant.
func DuplicateWarning(name string, excludeID uint, merchants []model.Merchant) string {
	if len([]rune(name)) < 2 {
		return ""
	}
	for _, m := range merchants {
		if m.ID != excludeID && strings.EqualFold(m.MerchantName, name) {
			return fmt.Sprintf("A merchant named %q already exists!", m.MerchantName)
		}
	}
	return ""
}
