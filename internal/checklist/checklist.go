package checklist

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/dawnlock/internal/history"
	"github.com/julianstephens/dawnlock/internal/logger"
	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/storage"
)

// Manager tracks which routine items are completed today, plus the timestamp
// of the day's first completion. Storage failures degrade to "no state" on
// read and are logged and dropped on write; mutations hold a mutex so two
// read-modify-write cycles never interleave.
type Manager struct {
	store storage.Provider
	mu    sync.Mutex
	now   func() time.Time
}

func NewManager(store storage.Provider) *Manager {
	return &Manager{
		store: store,
		now:   time.Now,
	}
}

// Completed returns the set of items completed today, in completion order.
// WithClock overrides the time source, primarily for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) Completed() []models.RoutineItem {
	items, ok, err := m.store.GetChecklistItems()
	if err != nil {
		logger.Warn("Failed to load checklist items", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return items
}

// IsCompleted reports whether a single item is done.
func (m *Manager) IsCompleted(item models.RoutineItem) bool {
	for _, completed := range m.Completed() {
		if completed == item {
			return true
		}
	}
	return false
}

// IsComplete reports whether every routine item is done.
func (m *Manager) IsComplete() bool {
	return len(m.Completed()) == models.RoutineItemCount()
}

// StartTime returns the timestamp of today's first completion, if recorded.
func (m *Manager) StartTime() (time.Time, bool) {
	start, ok, err := m.store.GetChecklistStart()
	if err != nil {
		logger.Warn("Failed to load checklist start time", "error", err)
		return time.Time{}, false
	}
	return start, ok
}

// MarkComplete adds an item to the completed set. The first completion of the
// day records the start time; the item set and start time are persisted
// together under the mutation lock so the pair stays consistent.
func (m *Manager) MarkComplete(item models.RoutineItem) error {
	if !item.Valid() {
		return fmt.Errorf("unknown routine item: %q", item)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.Completed()
	for _, completed := range items {
		if completed == item {
			return nil
		}
	}

	if len(items) == 0 {
		if _, ok := m.StartTime(); !ok {
			if err := m.store.SaveChecklistStart(m.now()); err != nil {
				logger.Error("Failed to save checklist start time", "error", err)
			}
		}
	}

	items = append(items, item)
	if err := m.store.SaveChecklistItems(items); err != nil {
		logger.Error("Failed to save checklist items", "error", err)
	}
	return nil
}

// MarkIncomplete removes an item from the completed set. The start time is
// deliberately left in place; it only clears on reset.
func (m *Manager) MarkIncomplete(item models.RoutineItem) error {
	if !item.Valid() {
		return fmt.Errorf("unknown routine item: %q", item)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.Completed()
	kept := items[:0]
	for _, completed := range items {
		if completed != item {
			kept = append(kept, completed)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	if err := m.store.SaveChecklistItems(kept); err != nil {
		logger.Error("Failed to save checklist items", "error", err)
	}
	return nil
}

// Toggle flips an item's completion state.
func (m *Manager) Toggle(item models.RoutineItem) error {
	if m.IsCompleted(item) {
		return m.MarkIncomplete(item)
	}
	return m.MarkComplete(item)
}

// Reset clears the completed set and start time and stamps the reset guard.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

func (m *Manager) reset() {
	if err := m.store.SaveChecklistItems(nil); err != nil {
		logger.Error("Failed to clear checklist items", "error", err)
	}
	if err := m.store.ClearChecklistStart(); err != nil {
		logger.Error("Failed to clear checklist start time", "error", err)
	}
	if err := m.store.SaveLastReset(m.now()); err != nil {
		logger.Error("Failed to stamp last reset", "error", err)
	}
}

// ResetIfDue resets the checklist when the configured reset instant for the
// day has passed and no reset has happened since. The persisted last-reset
// stamp guards against double resets across triggers. Reports whether a
// reset occurred.
func (m *Manager) ResetIfDue(resetTime time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Before(resetTime) {
		return false
	}
	lastReset, ok, err := m.store.GetLastReset()
	if err != nil {
		logger.Warn("Failed to load last reset stamp", "error", err)
		return false
	}
	if ok && !lastReset.Before(resetTime) {
		return false
	}
	m.reset()
	return true
}

// OnCompleted forwards today's completion to the history ledger. Callers
// invoke it exactly once per transition to fully complete; the start time
// falls back to now when the stored one is missing.
func (m *Manager) OnCompleted(ledger *history.Ledger, wasLocked bool) {
	now := m.now()
	start, ok := m.StartTime()
	if !ok {
		start = now
	}
	ledger.RecordCompletion(m.Completed(), start, now, wasLocked)
}
