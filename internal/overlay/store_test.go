package overlay

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestGetDefaultsForUnknownID(t *testing.T) {
	s := openStore(t, t.TempDir())

	e := s.Get(42)
	assert.False(t, e.Favorite)
	assert.Equal(t, CategoryOther, e.Category)
	assert.Equal(t, StatusActive, e.Status)
}

func TestSetAndGetRoundtrip(t *testing.T) {
	dir := t.TempDir()
	s := openStore(t, dir)

	s.Set(7, Entry{Favorite: true, Category: CategoryFood, Status: StatusPending})

	e := s.Get(7)
	assert.True(t, e.Favorite)
	assert.Equal(t, CategoryFood, e.Category)
	assert.Equal(t, StatusPending, e.Status)

	// A fresh store over the same directory sees the persisted state.
	reopened := openStore(t, dir)
	assert.Equal(t, e, reopened.Get(7))
}

func TestRemovePrunesAllAttributes(t *testing.T) {
	s := openStore(t, t.TempDir())
	s.Set(5, Entry{Favorite: true, Category: CategoryRetail, Status: StatusInactive})

	s.Remove(5)

	e := s.Get(5)
	assert.Equal(t, DefaultEntry(), e)

	// Removing an absent entry is a no-op.
	s.Remove(5)
	assert.Equal(t, DefaultEntry(), s.Get(5))
}

func TestToggleFavorite(t *testing.T) {
	s := openStore(t, t.TempDir())

	assert.True(t, s.ToggleFavorite(3))
	assert.True(t, s.IsFavorite(3))
	assert.False(t, s.ToggleFavorite(3))
	assert.False(t, s.IsFavorite(3))
}

func TestFavoriteIDsKeepInsertionOrder(t *testing.T) {
	s := openStore(t, t.TempDir())
	s.SetFavorite(9, true)
	s.SetFavorite(2, true)
	s.SetFavorite(5, true)

	assert.Equal(t, []uint{9, 2, 5}, s.FavoriteIDs())
}

func TestMalformedStateFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"favorites.json", "categories.json", "statuses.json", "activity.json", "darkmode.json", "undo.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{not json"), 0o644))
	}

	s := openStore(t, dir)

	assert.Equal(t, DefaultEntry(), s.Get(1))
	assert.Empty(t, s.Activity())
	assert.False(t, s.DarkMode())
	_, ok := s.Undo()
	assert.False(t, ok)

	// The store stays writable after discarding the corrupt state.
	s.SetCategory(1, CategoryFashion)
	assert.Equal(t, CategoryFashion, s.Get(1).Category)
}

func TestOneCorruptNamespaceDoesNotPoisonOthers(t *testing.T) {
	dir := t.TempDir()
	s := openStore(t, dir)
	s.SetFavorite(4, true)
	s.SetDarkMode(true)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.json"), []byte("garbage"), 0o644))

	reopened := openStore(t, dir)
	assert.True(t, reopened.IsFavorite(4))
	assert.True(t, reopened.DarkMode())
	assert.Equal(t, CategoryOther, reopened.Get(4).Category)
}

func TestActivityRingDropsOldest(t *testing.T) {
	s := openStore(t, t.TempDir())

	for i := 0; i < activityLimit+5; i++ {
		s.AppendActivity(ActivityCreate, fmt.Sprintf("entry %d", i), "2026-01-01T00:00:00Z")
	}

	entries := s.Activity()
	require.Len(t, entries, activityLimit)
	assert.Equal(t, fmt.Sprintf("entry %d", 5), entries[0].Text)
	assert.Equal(t, fmt.Sprintf("entry %d", activityLimit+4), entries[len(entries)-1].Text)
}

func TestUndoSlot(t *testing.T) {
	dir := t.TempDir()
	s := openStore(t, dir)

	_, ok := s.Undo()
	assert.False(t, ok)

	snap := UndoSnapshot{
		MerchantName: "Acme",
		Country:      "US",
		Entry:        Entry{Favorite: true, Category: CategoryRetail, Status: StatusActive},
		ExpiresAt:    1234567890,
	}
	s.SetUndo(snap)

	got, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, snap, got)

	// Survives reopen.
	reopened := openStore(t, dir)
	got, ok = reopened.Undo()
	require.True(t, ok)
	assert.Equal(t, snap, got)

	reopened.ClearUndo()
	_, ok = reopened.Undo()
	assert.False(t, ok)
	_, err := os.Stat(filepath.Join(dir, "undo.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestDarkModePersists(t *testing.T) {
	dir := t.TempDir()
	s := openStore(t, dir)
	s.SetDarkMode(true)

	reopened := openStore(t, dir)
	assert.True(t, reopened.DarkMode())
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("Food & Beverage")
	assert.True(t, ok)
	assert.Equal(t, CategoryFood, c)

	c, ok = ParseCategory("Groceries")
	assert.False(t, ok)
	assert.Equal(t, CategoryOther, c)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("Pending")
	assert.True(t, ok)
	assert.Equal(t, StatusPending, s)

	s, ok = ParseStatus("Dormant")
	assert.False(t, ok)
	assert.Equal(t, StatusActive, s)
}
