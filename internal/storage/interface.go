package storage

import (
	"time"

	"github.com/julianstephens/dawnlock/internal/models"
)

// Provider persists the application's small set of independently keyed
// records. Getters return a presence flag so callers can distinguish "no data"
// from a zero value; absence of the lock state record means unlocked.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.AppSettings, bool, error)
	SaveSettings(models.AppSettings) error

	// Checklist
	GetChecklistItems() ([]models.RoutineItem, bool, error)
	SaveChecklistItems([]models.RoutineItem) error
	GetChecklistStart() (time.Time, bool, error)
	SaveChecklistStart(time.Time) error
	ClearChecklistStart() error

	// Reset guard
	GetLastReset() (time.Time, bool, error)
	SaveLastReset(time.Time) error

	// History
	GetHistory() ([]models.DailyRecord, bool, error)
	SaveHistory([]models.DailyRecord) error

	// Streak cache
	GetStreakCache() (models.StreakData, bool, error)
	SaveStreakCache(models.StreakData) error

	// Lock state
	GetLockState() (models.LockState, bool, error)
	SaveLockState(models.LockState) error
	ClearLockState() error

	// Utils
	GetConfigPath() string
}
