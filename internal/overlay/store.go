package overlay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const activityLimit = 20

// File names, one per namespace. Each is loaded and written independently so
// a corrupt file poisons only its own namespace.
const (
	favoritesFile  = "favorites.json"
	categoriesFile = "categories.json"
	statusesFile   = "statuses.json"
	activityFile   = "activity.json"
	darkModeFile   = "darkmode.json"
	undoFile       = "undo.json"
)

// Store persists the overlay attributes under a local state directory.
// Reads never fail: a missing or malformed file resolves to its default
// value. Writes happen synchronously on every mutation.
type Store struct {
	dir string
	log *zap.Logger

	favorites  []uint
	categories map[uint]Category
	statuses   map[uint]Status
	activity   []ActivityEntry
	darkMode   bool
	undo       *UndoSnapshot
}

// Open loads the overlay store from dir, creating the directory if needed.
func Open(dir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	s := &Store{
		dir:        dir,
		log:        log,
		categories: make(map[uint]Category),
		statuses:   make(map[uint]Status),
	}

	s.load(favoritesFile, &s.favorites)
	s.load(categoriesFile, &s.categories)
	s.load(statusesFile, &s.statuses)
	s.load(activityFile, &s.activity)
	s.load(darkModeFile, &s.darkMode)
	s.load(undoFile, &s.undo)

	// load replaces maps wholesale; nil them back to empty after corruption
	if s.categories == nil {
		s.categories = make(map[uint]Category)
	}
	if s.statuses == nil {
		s.statuses = make(map[uint]Status)
	}

	return s, nil
}

// Get returns the overlay entry for id, with defaults for any attribute
// that has never been set. It never fails.
func (s *Store) Get(id uint) Entry {
	e := DefaultEntry()
	e.Favorite = s.IsFavorite(id)
	if c, ok := s.categories[id]; ok {
		e.Category = c
	}
	if st, ok := s.statuses[id]; ok {
		e.Status = st
	}
	return e
}

// Set records the full overlay entry for id
func (s *Store) Set(id uint, e Entry) {
	s.setFavoriteInMemory(id, e.Favorite)
	s.categories[id] = e.Category
	s.statuses[id] = e.Status
	s.save(favoritesFile, s.favorites)
	s.save(categoriesFile, s.categories)
	s.save(statusesFile, s.statuses)
}

// Remove prunes every overlay attribute for id. No-op when absent. The
// activity log is untouched; it describes the past, not current rows.
func (s *Store) Remove(id uint) {
	s.setFavoriteInMemory(id, false)
	delete(s.categories, id)
	delete(s.statuses, id)
	s.save(favoritesFile, s.favorites)
	s.save(categoriesFile, s.categories)
	s.save(statusesFile, s.statuses)
}

// IsFavorite reports whether id is favorited
func (s *Store) IsFavorite(id uint) bool {
	for _, fid := range s.favorites {
		if fid == id {
			return true
		}
	}
	return false
}

// ToggleFavorite flips the favorite flag for id and returns the new value
func (s *Store) ToggleFavorite(id uint) bool {
	fav := !s.IsFavorite(id)
	s.setFavoriteInMemory(id, fav)
	s.save(favoritesFile, s.favorites)
	return fav
}

// SetFavorite sets the favorite flag for id
func (s *Store) SetFavorite(id uint, fav bool) {
	s.setFavoriteInMemory(id, fav)
	s.save(favoritesFile, s.favorites)
}

func (s *Store) setFavoriteInMemory(id uint, fav bool) {
	if fav {
		if !s.IsFavorite(id) {
			s.favorites = append(s.favorites, id)
		}
		return
	}
	next := s.favorites[:0]
	for _, fid := range s.favorites {
		if fid != id {
			next = append(next, fid)
		}
	}
	s.favorites = next
}

// FavoriteIDs returns the favorited IDs in the order they were added
func (s *Store) FavoriteIDs() []uint {
	out := make([]uint, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// SetCategory records the category for id
func (s *Store) SetCategory(id uint, c Category) {
	s.categories[id] = c
	s.save(categoriesFile, s.categories)
}

// SetStatus records the status for id
func (s *Store) SetStatus(id uint, st Status) {
	s.statuses[id] = st
	s.save(statusesFile, s.statuses)
}

// AppendActivity appends an entry to the activity log, dropping the oldest
// entries beyond the bound.
func (s *Store) AppendActivity(kind ActivityKind, text, timestamp string) {
	s.activity = append(s.activity, ActivityEntry{
		Kind:      kind,
		Text:      text,
		Timestamp: timestamp,
	})
	if len(s.activity) > activityLimit {
		s.activity = s.activity[len(s.activity)-activityLimit:]
	}
	s.save(activityFile, s.activity)
}

// Activity returns the recent activity entries, oldest first
func (s *Store) Activity() []ActivityEntry {
	out := make([]ActivityEntry, len(s.activity))
	copy(out, s.activity)
	return out
}

// DarkMode reports the persisted dark-mode preference
func (s *Store) DarkMode() bool {
	return s.darkMode
}

// SetDarkMode persists the dark-mode preference
func (s *Store) SetDarkMode(on bool) {
	s.darkMode = on
	s.save(darkModeFile, s.darkMode)
}

// Undo returns the persisted undo snapshot, if any
func (s *Store) Undo() (UndoSnapshot, bool) {
	if s.undo == nil {
		return UndoSnapshot{}, false
	}
	return *s.undo, true
}

// SetUndo stores the one-slot undo snapshot, replacing any previous one
func (s *Store) SetUndo(snap UndoSnapshot) {
	s.undo = &snap
	s.save(undoFile, s.undo)
}

// ClearUndo empties the undo slot
func (s *Store) ClearUndo() {
	if s.undo == nil {
		return
	}
	s.undo = nil
	if err := os.Remove(filepath.Join(s.dir, undoFile)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("Failed to remove undo file", zap.Error(err))
	}
}

// load reads one namespace file into dst. Missing files and malformed JSON
// both leave dst at its fallback value; neither is an error.
func (s *Store) load(name string, dst interface{}) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Warn("Discarding malformed overlay state",
			zap.String("file", name),
			zap.Error(err))
	}
}

// save writes one namespace file. Write failures are logged and swallowed:
// the in-memory state stays usable either way.
func (s *Store) save(name string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("Failed to encode overlay state",
			zap.String("file", name),
			zap.Error(err))
		return
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		s.log.Warn("Failed to write overlay state",
			zap.String("file", name),
			zap.Error(err))
	}
}
