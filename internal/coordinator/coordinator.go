// Package coordinator orchestrates merchant actions: every create, update,
// and delete goes through here so the remote store and the local overlay
// stay consistent with each other. It also owns the one-slot undo buffer
// and the activity log appends.
package coordinator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"merchantdesk/internal/model"
	"merchantdesk/internal/overlay"
	"merchantdesk/internal/view"

	"go.uber.org/zap"
)

// RemoteStore is the contract the merchant API client fulfills. The
// coordinator never touches the database directly.
type RemoteStore interface {
	List() ([]model.Merchant, error)
	Create(name, country string) (*model.Merchant, error)
	Update(id uint, name, country string) (*model.Merchant, error)
	Delete(id uint) error
}

// ValidationError is a client-detected input problem. It blocks the action
// before anything is sent to the store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrAborted is returned when the user declines a confirmation prompt
var ErrAborted = errors.New("action cancelled")

// ErrNothingToUndo is returned when the undo slot is empty or expired
var ErrNothingToUndo = errors.New("nothing to undo")

// Options configures coordinator timing
type Options struct {
	UndoWindow     time.Duration // how long a deleted merchant can be restored
	NoticeDuration time.Duration // how long success notices stay visible
}

// Coordinator drives merchant actions against the remote store while
// keeping the overlay store in step with the outcomes.
type Coordinator struct {
	remote  RemoteStore
	overlay *overlay.Store
	log     *zap.Logger

	undoWindow time.Duration
	noticeFor  time.Duration
	now        func() time.Time

	merchants []model.Merchant

	noticeText    string
	noticeExpires time.Time

	// ConfirmDuplicate is asked before creating a merchant whose name
	// already exists. A nil hook proceeds without asking.
	ConfirmDuplicate func(warning string) bool

	// ConfirmBulkDelete is asked before a bulk delete runs. A nil hook
	// proceeds without asking.
	ConfirmBulkDelete func(count int) bool
}

// New creates a coordinator. Zero durations in opts fall back to the
// defaults of a 5 second undo window and 3 second notices.
func New(remote RemoteStore, ov *overlay.Store, log *zap.Logger, opts Options) *Coordinator {
	if opts.UndoWindow <= 0 {
		opts.UndoWindow = 5 * time.Second
	}
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = 3 * time.Second
	}
	return &Coordinator{
		remote:     remote,
		overlay:    ov,
		log:        log,
		undoWindow: opts.UndoWindow,
		noticeFor:  opts.NoticeDuration,
		now:        time.Now,
	}
}

// Refresh reloads the merchant snapshot from the remote store
func (c *Coordinator) Refresh() ([]model.Merchant, error) {
	merchants, err := c.remote.List()
	if err != nil {
		c.log.Error("Failed to refresh merchants", zap.Error(err))
		return nil, err
	}
	c.merchants = merchants
	return merchants, nil
}

// Merchants returns the last fetched snapshot
func (c *Coordinator) Merchants() []model.Merchant {
	return c.merchants
}

// Overlay exposes the overlay store for read-side composition
func (c *Coordinator) Overlay() *overlay.Store {
	return c.overlay
}

// Create validates the input, runs the advisory duplicate check, creates
// the merchant remotely, and attaches the overlay attributes to the new ID.
func (c *Coordinator) Create(name, country string, category overlay.Category, status overlay.Status) (*model.Merchant, error) {
	name = strings.TrimSpace(name)
	country = strings.TrimSpace(country)
	if err := validate(name, country); err != nil {
		return nil, err
	}

	if warning := view.DuplicateWarning(name, 0, c.merchants); warning != "" {
		c.log.Warn("Duplicate merchant name", zap.String("merchant_name", name))
		if c.ConfirmDuplicate != nil && !c.ConfirmDuplicate(warning) {
			return nil, ErrAborted
		}
	}

	merchant, err := c.remote.Create(name, country)
	if err != nil {
		c.log.Error("Failed to create merchant", zap.String("merchant_name", name), zap.Error(err))
		return nil, err
	}

	c.overlay.Set(merchant.ID, overlay.Entry{
		Favorite: false,
		Category: category,
		Status:   status,
	})
	c.appendActivity(overlay.ActivityCreate,
		fmt.Sprintf("Created %q (%s)", merchant.MerchantName, merchant.Country))

	c.log.Info("Merchant created",
		zap.Uint("id", merchant.ID),
		zap.String("merchant_name", merchant.MerchantName))

	if _, err := c.Refresh(); err != nil {
		return merchant, err
	}
	c.setNotice("Merchant created successfully!")
	return merchant, nil
}

// Update validates the input, updates the merchant remotely, and merges the
// overlay attributes. The favorite flag is untouched.
func (c *Coordinator) Update(id uint, name, country string, category overlay.Category, status overlay.Status) (*model.Merchant, error) {
	name = strings.TrimSpace(name)
	country = strings.TrimSpace(country)
	if err := validate(name, country); err != nil {
		return nil, err
	}

	merchant, err := c.remote.Update(id, name, country)
	if err != nil {
		c.log.Error("Failed to update merchant", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	c.overlay.SetCategory(id, category)
	c.overlay.SetStatus(id, status)
	c.appendActivity(overlay.ActivityUpdate,
		fmt.Sprintf("Updated %q (%s)", merchant.MerchantName, merchant.Country))

	c.log.Info("Merchant updated", zap.Uint("id", id))

	if _, err := c.Refresh(); err != nil {
		return merchant, err
	}
	c.setNotice("Merchant updated successfully!")
	return merchant, nil
}

// Delete removes the merchant remotely, prunes its overlay entry, and arms
// the one-slot undo buffer with the full merged row.
func (c *Coordinator) Delete(id uint) error {
	// Snapshot the merged row before it disappears; undo re-creates from it.
	var snap *overlay.UndoSnapshot
	for _, m := range c.merchants {
		if m.ID == id {
			entry := c.overlay.Get(id)
			snap = &overlay.UndoSnapshot{
				MerchantName: m.MerchantName,
				Country:      m.Country,
				Entry:        entry,
			}
			break
		}
	}

	if err := c.remote.Delete(id); err != nil {
		c.log.Error("Failed to delete merchant", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if snap != nil {
		snap.ExpiresAt = c.now().Add(c.undoWindow).Unix()
		c.overlay.SetUndo(*snap)
		c.appendActivity(overlay.ActivityDelete,
			fmt.Sprintf("Deleted %q (%s)", snap.MerchantName, snap.Country))
	} else {
		c.appendActivity(overlay.ActivityDelete, fmt.Sprintf("Deleted merchant #%d", id))
	}
	c.overlay.Remove(id)

	c.log.Info("Merchant deleted", zap.Uint("id", id))

	if _, err := c.Refresh(); err != nil {
		return err
	}
	c.setNotice("Merchant deleted successfully!")
	return nil
}

// CanUndo reports whether the undo slot is populated and unexpired. An
// expired slot is cleared as a side effect.
func (c *Coordinator) CanUndo() bool {
	snap, ok := c.overlay.Undo()
	if !ok {
		return false
	}
	if c.now().Unix() >= snap.ExpiresAt {
		c.overlay.ClearUndo()
		return false
	}
	return true
}

// Undo re-creates the buffered merchant and re-applies its overlay entry to
// the new ID. The restored record is a new entity: the store cannot bring
// back the original ID.
func (c *Coordinator) Undo() (*model.Merchant, error) {
	if !c.CanUndo() {
		return nil, ErrNothingToUndo
	}
	snap, _ := c.overlay.Undo()

	merchant, err := c.remote.Create(snap.MerchantName, snap.Country)
	if err != nil {
		c.log.Error("Failed to restore merchant",
			zap.String("merchant_name", snap.MerchantName),
			zap.Error(err))
		return nil, err
	}

	c.overlay.Set(merchant.ID, snap.Entry)
	c.overlay.ClearUndo()
	c.appendActivity(overlay.ActivityCreate,
		fmt.Sprintf("Restored %q (%s) as #%d", merchant.MerchantName, merchant.Country, merchant.ID))

	c.log.Info("Merchant restored",
		zap.Uint("id", merchant.ID),
		zap.String("merchant_name", merchant.MerchantName))

	if _, err := c.Refresh(); err != nil {
		return merchant, err
	}
	c.setNotice("Merchant restored!")
	return merchant, nil
}

// DismissUndo clears the undo slot without restoring anything
func (c *Coordinator) DismissUndo() {
	c.overlay.ClearUndo()
}

// BulkDelete deletes the given IDs one at a time, in order. The first
// failure aborts the loop; earlier deletes stay committed. Returns how many
// deletes completed.
func (c *Coordinator) BulkDelete(ids []uint) (int, error) {
	if len(ids) == 0 {
		return 0, &ValidationError{Message: "No merchants selected"}
	}
	if c.ConfirmBulkDelete != nil && !c.ConfirmBulkDelete(len(ids)) {
		return 0, ErrAborted
	}

	deleted := 0
	for _, id := range ids {
		if err := c.remote.Delete(id); err != nil {
			c.log.Error("Bulk delete aborted",
				zap.Uint("id", id),
				zap.Int("deleted", deleted),
				zap.Error(err))
			if _, rerr := c.Refresh(); rerr != nil {
				c.log.Error("Failed to refresh after aborted bulk delete", zap.Error(rerr))
			}
			return deleted, fmt.Errorf("failed to delete some merchants: %w", err)
		}
		c.overlay.Remove(id)
		deleted++
	}

	c.appendActivity(overlay.ActivityDelete, fmt.Sprintf("Deleted %d merchants", deleted))
	c.log.Info("Bulk delete finished", zap.Int("deleted", deleted))

	if _, err := c.Refresh(); err != nil {
		return deleted, err
	}
	c.setNotice(fmt.Sprintf("Deleted %d merchants!", deleted))
	return deleted, nil
}

// Notice returns the current transient notice, or empty once it has
// expired.
func (c *Coordinator) Notice() string {
	if c.noticeText == "" || c.now().After(c.noticeExpires) {
		return ""
	}
	return c.noticeText
}

func (c *Coordinator) setNotice(text string) {
	c.noticeText = text
	c.noticeExpires = c.now().Add(c.noticeFor)
}

func (c *Coordinator) appendActivity(kind overlay.ActivityKind, text string) {
	c.overlay.AppendActivity(kind, text, c.now().Format(time.RFC3339))
}

func validate(name, country string) error {
	if name == "" || country == "" {
		return &ValidationError{Message: "Please fill in all fields"}
	}
	if len([]rune(name)) < 2 {
		return &ValidationError{Message: "Merchant name must be at least 2 characters"}
	}
	return nil
}
