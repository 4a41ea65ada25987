package constants

const (
	AppName           = "dawnlock"
	DefaultConfigPath = "~/.config/dawnlock/dawnlock.db"
	Version           = "v0.2.0"

	// DateFormat is the standard date key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard wall-clock format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Storage keys. Each persisted record lives under its own key.
	KeyChecklistItems = "checklist_items"
	KeyChecklistStart = "checklist_start_time"
	KeyLastReset      = "last_reset"
	KeySettings       = "app_settings"
	KeyHistory        = "daily_history"
	KeyStreakCache    = "streak_cache"
	KeyLockState      = "lock_state"

	// Schedule defaults
	DefaultWeekdayStart = "07:00"
	DefaultWeekdayEnd   = "10:00"
	DefaultWeekendStart = "08:00"
	DefaultWeekendEnd   = "11:00"

	// Emergency unlock delay bounds (minutes)
	DefaultEmergencyUnlockDelayMin = 10
	MinEmergencyUnlockDelayMin     = 1
	MaxEmergencyUnlockDelayMin     = 30

	// HistoryRetentionDays caps the daily-record list
	HistoryRetentionDays = 90

	// LockReasonRoutine tags lock records created by the routine policy
	LockReasonRoutine = "morning_routine"

	// Watcher constants
	WatcherLockfileName = "dawnlock-watcher.lock"
	WatcherPollInterval = 1 // seconds
)
