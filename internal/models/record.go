package models

import "time"

// DailyRecord captures one day's completed routine. At most one record exists
// per date key; a same-day completion replaces the earlier record.
type DailyRecord struct {
	Date           string        `json:"date"` // local date key, YYYY-MM-DD
	CompletedItems []RoutineItem `json:"completed_items"`
	StartedAt      time.Time     `json:"started_at"`
	CompletedAt    time.Time     `json:"completed_at"`
	TotalTimeMs    int64         `json:"total_time_ms"`
	WasLocked      bool          `json:"was_locked"`
}

// TotalTime returns the recorded completion duration.
func (r DailyRecord) TotalTime() time.Duration {
	return time.Duration(r.TotalTimeMs) * time.Millisecond
}

// StreakData is the derived streak summary, cached alongside the history list
// and recomputed on every write.
type StreakData struct {
	CurrentStreak      int      `json:"current_streak"`
	LongestStreak      int      `json:"longest_streak"`
	LastCompletionDate string   `json:"last_completion_date,omitempty"`
	TotalCompletions   int      `json:"total_completions"`
	CompletionDates    []string `json:"completion_dates,omitempty"`
}

// LockState records an active lock. Absence of a persisted LockState means
// the device is unlocked.
type LockState struct {
	IsLocked bool      `json:"is_locked"`
	LockedAt time.Time `json:"locked_at"`
	Reason   string    `json:"reason"`
}
