package lock

import (
	"errors"
	"time"

	"github.com/julianstephens/dawnlock/internal/checklist"
	"github.com/julianstephens/dawnlock/internal/constants"
	"github.com/julianstephens/dawnlock/internal/history"
	"github.com/julianstephens/dawnlock/internal/logger"
	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/settings"
	"github.com/julianstephens/dawnlock/internal/storage"
)

// ErrUnlockNotReady is returned when an emergency unlock is attempted before
// the configured delay has elapsed. It is the one error in the lock engine
// that reaches callers; everything else fails open.
var ErrUnlockNotReady = errors.New("emergency unlock is not yet available")

// Engine is the lock policy state machine. The two observable states are
// unlocked (no persisted LockState) and locked (a LockState record exists).
// Emergency eligibility is a pure function of elapsed time, never stored.
//
// Storage failures degrade toward not restricting the user: a failed read
// means "not locked" and "cannot emergency unlock", never "locked".
type Engine struct {
	store     storage.Provider
	settings  *settings.Manager
	checklist *checklist.Manager
	now       func() time.Time
}

func NewEngine(store storage.Provider, settings *settings.Manager, checklist *checklist.Manager) *Engine {
	return &Engine{
		store:     store,
		settings:  settings,
		checklist: checklist,
		now:       time.Now,
	}
}

// State returns the persisted lock state and whether one exists.
// WithClock overrides the time source, primarily for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

func (e *Engine) State() (models.LockState, bool) {
	state, ok, err := e.store.GetLockState()
	if err != nil {
		logger.Warn("Failed to load lock state, treating as unlocked", "error", err)
		return models.LockState{}, false
	}
	return state, ok
}

// IsLocked reports whether a lock is currently engaged.
func (e *Engine) IsLocked() bool {
	state, ok := e.State()
	return ok && state.IsLocked
}

// ShouldLockAt decides whether the lock should be engaged at t. An existing
// lock short-circuits to true without re-evaluating the window or the
// checklist, so the lock cannot flicker off until an explicit unlock.
func (e *Engine) ShouldLockAt(t time.Time) bool {
	if e.IsLocked() {
		return true
	}
	if !e.settings.IsRoutineActiveAt(t) {
		return false
	}
	return !e.checklist.IsComplete()
}

// ShouldLockNow decides whether the lock should currently be engaged.
func (e *Engine) ShouldLockNow() bool {
	return e.ShouldLockAt(e.now())
}

// Lock engages the lock, recording when it happened. Engaging an already
// locked engine keeps the original LockedAt.
func (e *Engine) Lock() {
	if e.IsLocked() {
		return
	}
	state := models.LockState{
		IsLocked: true,
		LockedAt: e.now(),
		Reason:   constants.LockReasonRoutine,
	}
	if err := e.store.SaveLockState(state); err != nil {
		logger.Error("Failed to save lock state", "error", err)
	}
}

// Unlock deletes the lock state. The checklist is untouched.
func (e *Engine) Unlock() {
	if err := e.store.ClearLockState(); err != nil {
		logger.Error("Failed to clear lock state", "error", err)
	}
}

// CompleteIfDone handles the normal unlock path: when the checklist has
// reached full completion, the completion is recorded against the ledger
// (noting whether the lock was active) and any lock is released. Reports
// whether a completion was recorded.
func (e *Engine) CompleteIfDone(ledger *history.Ledger) bool {
	if !e.checklist.IsComplete() {
		return false
	}
	wasLocked := e.IsLocked()
	e.checklist.OnCompleted(ledger, wasLocked)
	if wasLocked {
		e.Unlock()
	}
	return true
}

// TimeUntilEmergencyUnlock returns how long until the emergency override
// becomes available, or zero when it already is or nothing is locked.
func (e *Engine) TimeUntilEmergencyUnlock() time.Duration {
	state, ok := e.State()
	if !ok || !state.IsLocked {
		return 0
	}
	delay := time.Duration(e.settings.Load().EmergencyUnlockDelay) * time.Minute
	remaining := delay - e.now().Sub(state.LockedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanEmergencyUnlock reports whether the time-delayed override is available.
func (e *Engine) CanEmergencyUnlock() bool {
	state, ok := e.State()
	if !ok || !state.IsLocked {
		return false
	}
	delay := time.Duration(e.settings.Load().EmergencyUnlockDelay) * time.Minute
	return e.now().Sub(state.LockedAt) >= delay
}

// EmergencyUnlock clears the lock without recording a completion, leaving
// the checklist in its partial state. Attempting it before the delay has
// elapsed fails with ErrUnlockNotReady; the eligibility check is
// fail-closed, so a missing lock state also refuses.
func (e *Engine) EmergencyUnlock() error {
	if !e.CanEmergencyUnlock() {
		return ErrUnlockNotReady
	}
	logger.Info("Emergency unlock used")
	e.Unlock()
	return nil
}

// Evaluate runs one pass of the policy for an external trigger: roll the
// checklist over when the reset instant has passed, record and unlock on
// full completion, and engage the lock when the decision calls for it.
// Returns whether the lock is engaged after the pass.
func (e *Engine) Evaluate(ledger *history.Ledger) bool {
	now := e.now()
	if e.checklist.ResetIfDue(e.settings.ResetTimeOn(now)) {
		logger.Debug("Checklist reset for the day")
	}
	if e.IsLocked() && e.CompleteIfDone(ledger) {
		return false
	}
	if e.ShouldLockAt(now) {
		e.Lock()
		return true
	}
	return e.IsLocked()
}
