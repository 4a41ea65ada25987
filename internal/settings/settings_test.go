package settings

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "dawnlock.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return NewManager(store)
}

func at(weekday time.Weekday, hh, mm int) time.Time {
	// 2025-03-02 is a Sunday; offset to the requested weekday.
	return time.Date(2025, time.March, 2+int(weekday), hh, mm, 0, 0, time.Local)
}

func TestDefaultAllDaysEnabled(t *testing.T) {
	settings := Default()
	for day := 0; day < 7; day++ {
		if !settings.Schedule[day].Enabled {
			t.Errorf("Schedule[%d].Enabled = false, want true", day)
		}
	}
	if settings.Schedule[1].StartTime != "07:00" || settings.Schedule[1].EndTime != "10:00" {
		t.Errorf("weekday window = %s-%s, want 07:00-10:00",
			settings.Schedule[1].StartTime, settings.Schedule[1].EndTime)
	}
	if settings.Schedule[0].StartTime != "08:00" || settings.Schedule[6].EndTime != "11:00" {
		t.Errorf("weekend window wrong: Sun start %s, Sat end %s",
			settings.Schedule[0].StartTime, settings.Schedule[6].EndTime)
	}
	if settings.ResetBehavior != models.ResetMidnight {
		t.Errorf("ResetBehavior = %q, want midnight", settings.ResetBehavior)
	}
	if !settings.LockingEnabled {
		t.Error("LockingEnabled = false, want true")
	}
	if settings.EmergencyUnlockDelay != 10 {
		t.Errorf("EmergencyUnlockDelay = %d, want 10", settings.EmergencyUnlockDelay)
	}
}

func TestLoadReturnsDefaultsWhenEmpty(t *testing.T) {
	m := newTestManager(t)
	settings := m.Load()
	if settings.EmergencyUnlockDelay != 10 || !settings.LockingEnabled {
		t.Errorf("Load() on empty store = %+v, want defaults", settings)
	}
}

func TestIsRoutineActiveAt(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Manager)
		t     time.Time
		want  bool
	}{
		{
			name: "inside weekday window",
			t:    at(time.Wednesday, 8, 30),
			want: true,
		},
		{
			name: "before window",
			t:    at(time.Wednesday, 6, 0),
			want: false,
		},
		{
			name: "window start is inclusive",
			t:    at(time.Wednesday, 7, 0),
			want: true,
		},
		{
			name: "window end is inclusive",
			t:    at(time.Wednesday, 10, 0),
			want: true,
		},
		{
			name: "weekend window shifted",
			t:    at(time.Sunday, 7, 30),
			want: false,
		},
		{
			name: "locking disabled wins",
			setup: func(m *Manager) {
				m.SetLockingEnabled(false)
			},
			t:    at(time.Wednesday, 8, 30),
			want: false,
		},
		{
			name: "day disabled wins",
			setup: func(m *Manager) {
				if err := m.UpdateDaySchedule(3, models.DaySchedule{Enabled: false, StartTime: "07:00", EndTime: "10:00"}); err != nil {
					panic(err)
				}
			},
			t:    at(time.Wednesday, 8, 30),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			if tt.setup != nil {
				tt.setup(m)
			}
			if got := m.IsRoutineActiveAt(tt.t); got != tt.want {
				t.Errorf("IsRoutineActiveAt(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestResetTimeOn(t *testing.T) {
	wednesday := at(time.Wednesday, 9, 15)

	t.Run("midnight behavior", func(t *testing.T) {
		m := newTestManager(t)
		got := m.ResetTimeOn(wednesday)
		if got.Hour() != 0 || got.Minute() != 0 || got.Day() != wednesday.Day() {
			t.Errorf("ResetTimeOn() = %v, want local midnight", got)
		}
	})

	t.Run("morning behavior uses window start", func(t *testing.T) {
		m := newTestManager(t)
		if err := m.SetResetBehavior(models.ResetMorning, ""); err != nil {
			t.Fatalf("SetResetBehavior() error = %v", err)
		}
		got := m.ResetTimeOn(wednesday)
		if got.Hour() != 7 || got.Minute() != 0 {
			t.Errorf("ResetTimeOn() = %v, want 07:00", got)
		}
	})

	t.Run("morning behavior falls back to midnight when day disabled", func(t *testing.T) {
		m := newTestManager(t)
		if err := m.SetResetBehavior(models.ResetMorning, ""); err != nil {
			t.Fatalf("SetResetBehavior() error = %v", err)
		}
		if err := m.UpdateDaySchedule(3, models.DaySchedule{Enabled: false, StartTime: "07:00", EndTime: "10:00"}); err != nil {
			t.Fatalf("UpdateDaySchedule() error = %v", err)
		}
		got := m.ResetTimeOn(wednesday)
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("ResetTimeOn() = %v, want midnight fallback", got)
		}
	})

	t.Run("custom behavior", func(t *testing.T) {
		m := newTestManager(t)
		if err := m.SetResetBehavior(models.ResetCustom, "05:45"); err != nil {
			t.Fatalf("SetResetBehavior() error = %v", err)
		}
		got := m.ResetTimeOn(wednesday)
		if got.Hour() != 5 || got.Minute() != 45 {
			t.Errorf("ResetTimeOn() = %v, want 05:45", got)
		}
	})

	t.Run("custom behavior requires a time", func(t *testing.T) {
		m := newTestManager(t)
		if err := m.SetResetBehavior(models.ResetCustom, ""); err == nil {
			t.Error("SetResetBehavior(custom, \"\") should fail")
		}
	})
}

func TestUpdateDaySchedule(t *testing.T) {
	tests := []struct {
		name    string
		weekday int
		sched   models.DaySchedule
		wantErr bool
	}{
		{
			name:    "valid update",
			weekday: 2,
			sched:   models.DaySchedule{Enabled: true, StartTime: "06:00", EndTime: "09:00"},
		},
		{
			name:    "weekday out of range",
			weekday: 7,
			sched:   models.DaySchedule{Enabled: true, StartTime: "06:00", EndTime: "09:00"},
			wantErr: true,
		},
		{
			name:    "overnight window rejected",
			weekday: 2,
			sched:   models.DaySchedule{Enabled: true, StartTime: "22:00", EndTime: "02:00"},
			wantErr: true,
		},
		{
			name:    "malformed start",
			weekday: 2,
			sched:   models.DaySchedule{Enabled: true, StartTime: "6am", EndTime: "09:00"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			err := m.UpdateDaySchedule(tt.weekday, tt.sched)
			if (err != nil) != tt.wantErr {
				t.Errorf("UpdateDaySchedule() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}
			got := m.Load().Schedule[tt.weekday]
			if got.StartTime != tt.sched.StartTime || got.EndTime != tt.sched.EndTime {
				t.Errorf("persisted schedule = %+v, want %+v", got, tt.sched)
			}
		})
	}
}

func TestSetEmergencyUnlockDelayClamps(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    int
	}{
		{name: "below minimum clamps to 1", minutes: 0, want: 1},
		{name: "negative clamps to 1", minutes: -5, want: 1},
		{name: "above maximum clamps to 30", minutes: 50, want: 30},
		{name: "in range unchanged", minutes: 15, want: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			if got := m.SetEmergencyUnlockDelay(tt.minutes); got != tt.want {
				t.Errorf("SetEmergencyUnlockDelay(%d) = %d, want %d", tt.minutes, got, tt.want)
			}
			if persisted := m.Load().EmergencyUnlockDelay; persisted != tt.want {
				t.Errorf("persisted delay = %d, want %d", persisted, tt.want)
			}
		})
	}
}
