// Package overlay keeps the client-side attributes of merchants: flags and
// labels the shared merchants table cannot hold because its schema is not
// ours to change. Entries are keyed by merchant ID and persisted locally;
// the remote store never sees them.
package overlay

// Category labels a merchant's line of business
type Category string

const (
	CategoryRetail      Category = "Retail"
	CategoryFood        Category = "Food & Beverage"
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryServices    Category = "Services"
	CategoryHealthcare  Category = "Healthcare"
	CategoryOther       Category = "Other"
)

// Categories lists every valid category in display order
var Categories = []Category{
	CategoryRetail,
	CategoryFood,
	CategoryElectronics,
	CategoryFashion,
	CategoryServices,
	CategoryHealthcare,
	CategoryOther,
}

// ParseCategory reports whether s names a known category
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return CategoryOther, false
}

// Status marks a merchant's operational state
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusPending  Status = "Pending"
)

// Statuses lists every valid status in display order
var Statuses = []Status{StatusActive, StatusInactive, StatusPending}

// ParseStatus reports whether s names a known status
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return StatusActive, false
}

// Entry holds the overlay attributes for one merchant ID. A missing entry is
// equivalent to DefaultEntry().
type Entry struct {
	Favorite bool     `json:"favorite"`
	Category Category `json:"category"`
	Status   Status   `json:"status"`
}

// DefaultEntry returns the attributes assumed for any merchant without an
// overlay entry.
func DefaultEntry() Entry {
	return Entry{
		Favorite: false,
		Category: CategoryOther,
		Status:   StatusActive,
	}
}

// ActivityKind classifies an activity log entry
type ActivityKind string

const (
	ActivityCreate ActivityKind = "create"
	ActivityUpdate ActivityKind = "update"
	ActivityDelete ActivityKind = "delete"
	ActivityExport ActivityKind = "export"
)

// ActivityEntry is one line of the recent-activity log
type ActivityEntry struct {
	Kind      ActivityKind `json:"kind"`
	Text      string       `json:"text"`
	Timestamp string       `json:"timestamp"`
}

// UndoSnapshot is the one-slot buffer holding the most recently deleted
// merchant so it can be re-created within the undo window. The restored
// record gets a fresh ID; the store has no identity-preserving restore.
type UndoSnapshot struct {
	MerchantName string `json:"merchant_name"`
	Country      string `json:"country"`
	Entry        Entry  `json:"entry"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
}
