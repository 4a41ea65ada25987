package models

// ResetBehavior controls when the daily checklist rolls over.
type ResetBehavior string

const (
	ResetMidnight ResetBehavior = "midnight"
	ResetMorning  ResetBehavior = "morning"
	ResetCustom   ResetBehavior = "custom"
)

// Valid reports whether b is a known reset behavior.
func (b ResetBehavior) Valid() bool {
	switch b {
	case ResetMidnight, ResetMorning, ResetCustom:
		return true
	}
	return false
}

// DaySchedule is the locking window for a single weekday. StartTime and
// EndTime are wall-clock "HH:MM" strings, inclusive at both ends. A start
// after the end is a misconfiguration the window check treats as an
// always-closed window.
type DaySchedule struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AppSettings is the full persisted configuration. Schedule is indexed by
// weekday number, 0=Sunday through 6=Saturday, all seven always present.
type AppSettings struct {
	Schedule             [7]DaySchedule `json:"schedule"`
	ResetBehavior        ResetBehavior  `json:"reset_behavior"`
	CustomResetTime      string         `json:"custom_reset_time,omitempty"`
	LockingEnabled       bool           `json:"locking_enabled"`
	EmergencyUnlockDelay int            `json:"emergency_unlock_delay"` // minutes, clamped to [1,30]
}
