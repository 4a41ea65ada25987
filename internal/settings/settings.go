package settings

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/dawnlock/internal/constants"
	"github.com/julianstephens/dawnlock/internal/logger"
	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/storage"
	"github.com/julianstephens/dawnlock/internal/utils"
)

// Manager owns the persisted AppSettings. Reads degrade to defaults on any
// storage failure; writes are best-effort and logged. Mutators follow a
// load-apply-persist cycle serialized by a mutex so concurrent triggers
// cannot interleave whole-object overwrites.
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

// Default returns the factory configuration: every day enabled, weekdays
// 07:00-10:00, weekends 08:00-11:00, midnight reset, locking on, ten minute
// emergency delay.
func Default() models.AppSettings {
	settings := models.AppSettings{
		ResetBehavior:        models.ResetMidnight,
		LockingEnabled:       true,
		EmergencyUnlockDelay: constants.DefaultEmergencyUnlockDelayMin,
	}
	for day := 0; day < 7; day++ {
		sched := models.DaySchedule{
			Enabled:   true,
			StartTime: constants.DefaultWeekdayStart,
			EndTime:   constants.DefaultWeekdayEnd,
		}
		if day == 0 || day == 6 {
			sched.StartTime = constants.DefaultWeekendStart
			sched.EndTime = constants.DefaultWeekendEnd
		}
		settings.Schedule[day] = sched
	}
	return settings
}

// Load returns the persisted settings, or the defaults when nothing is stored
// or the read fails.
// WithClock overrides the time source, primarily for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) Load() models.AppSettings {
	settings, ok, err := m.store.GetSettings()
	if err != nil {
		logger.Warn("Failed to load settings, using defaults", "error", err)
		return Default()
	}
	if !ok {
		return Default()
	}
	return settings
}

// Save persists the settings. Failures are logged, never surfaced.
func (m *Manager) Save(settings models.AppSettings) {
	if err := m.store.SaveSettings(settings); err != nil {
		logger.Error("Failed to save settings", "error", err)
	}
}

// ScheduleOn returns the schedule for t's weekday, or nil when that day is
// disabled.
func (m *Manager) ScheduleOn(t time.Time) *models.DaySchedule {
	settings := m.Load()
	sched := settings.Schedule[utils.Weekday(t)]
	if !sched.Enabled {
		return nil
	}
	return &sched
}

// ScheduleForToday returns today's schedule, or nil when today is disabled.
func (m *Manager) ScheduleForToday() *models.DaySchedule {
	return m.ScheduleOn(m.now())
}

// IsRoutineActiveAt reports whether the routine window is open at t: locking
// globally enabled, t's weekday enabled, and t inside the day's window
// (inclusive at both ends).
func (m *Manager) IsRoutineActiveAt(t time.Time) bool {
	settings := m.Load()
	if !settings.LockingEnabled {
		return false
	}
	sched := settings.Schedule[utils.Weekday(t)]
	if !sched.Enabled {
		return false
	}
	return utils.IsWithinWindow(t, sched.StartTime, sched.EndTime)
}

// IsRoutineActiveNow reports whether the routine window is currently open.
func (m *Manager) IsRoutineActiveNow() bool {
	return m.IsRoutineActiveAt(m.now())
}

// ResetTimeOn returns the instant on t's calendar day at which the checklist
// resets. Morning mode uses the day's window start and custom mode the
// configured time; both fall back to midnight when unavailable.
func (m *Manager) ResetTimeOn(t time.Time) time.Time {
	settings := m.Load()
	midnight := utils.Midnight(t)

	switch settings.ResetBehavior {
	case models.ResetMorning:
		sched := settings.Schedule[utils.Weekday(t)]
		if !sched.Enabled {
			return midnight
		}
		at, err := utils.AtClock(t, sched.StartTime)
		if err != nil {
			return midnight
		}
		return at
	case models.ResetCustom:
		if settings.CustomResetTime == "" {
			return midnight
		}
		at, err := utils.AtClock(t, settings.CustomResetTime)
		if err != nil {
			return midnight
		}
		return at
	default:
		return midnight
	}
}

// ResetTimeForToday returns today's reset instant.
func (m *Manager) ResetTimeForToday() time.Time {
	return m.ResetTimeOn(m.now())
}

// UpdateDaySchedule replaces the schedule for one weekday. Overnight windows
// (start after end) are rejected rather than silently miscomputed.
func (m *Manager) UpdateDaySchedule(weekday int, sched models.DaySchedule) error {
	if weekday < 0 || weekday > 6 {
		return fmt.Errorf("invalid weekday %d: must be 0 (Sunday) through 6 (Saturday)", weekday)
	}
	startMin, err := utils.ParseClock(sched.StartTime)
	if err != nil {
		return err
	}
	endMin, err := utils.ParseClock(sched.EndTime)
	if err != nil {
		return err
	}
	if startMin > endMin {
		return fmt.Errorf("window start %s is after end %s: overnight windows are not supported", sched.StartTime, sched.EndTime)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	settings := m.Load()
	settings.Schedule[weekday] = sched
	m.Save(settings)
	return nil
}

// SetLockingEnabled flips the global kill-switch.
func (m *Manager) SetLockingEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	settings := m.Load()
	settings.LockingEnabled = enabled
	m.Save(settings)
}

// SetResetBehavior updates the reset policy. Custom mode requires a valid
// HH:MM reset time.
func (m *Manager) SetResetBehavior(behavior models.ResetBehavior, customTime string) error {
	if !behavior.Valid() {
		return fmt.Errorf("invalid reset behavior %q", behavior)
	}
	if behavior == models.ResetCustom && !utils.ValidClock(customTime) {
		return fmt.Errorf("custom reset behavior requires a valid HH:MM time, got %q", customTime)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	settings := m.Load()
	settings.ResetBehavior = behavior
	if behavior == models.ResetCustom {
		settings.CustomResetTime = customTime
	} else {
		settings.CustomResetTime = ""
	}
	m.Save(settings)
	return nil
}

// SetEmergencyUnlockDelay clamps the delay to [1,30] minutes, persists it,
// and returns the applied value.
func (m *Manager) SetEmergencyUnlockDelay(minutes int) int {
	if minutes < constants.MinEmergencyUnlockDelayMin {
		minutes = constants.MinEmergencyUnlockDelayMin
	}
	if minutes > constants.MaxEmergencyUnlockDelayMin {
		minutes = constants.MaxEmergencyUnlockDelayMin
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	settings := m.Load()
	settings.EmergencyUnlockDelay = minutes
	m.Save(settings)
	return minutes
}
