package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/dawnlock/internal/models"
)

type SettingsCmd struct {
	List bool `help:"Print the current settings." short:"l"`

	Locking *bool   `help:"Enable or disable device locking."`
	Delay   *int    `help:"Emergency unlock delay in minutes (clamped to 1-30)."`
	Reset   *string `help:"Reset behavior: midnight, morning, or custom."`
	ResetAt *string `help:"Reset time for the custom behavior, HH:MM."`

	Day     *string `help:"Weekday to reschedule (sun, mon, ... or 0-6)."`
	Enabled *bool   `help:"Enable or disable the window for --day."`
	Start   *string `help:"Window start for --day, HH:MM."`
	End     *string `help:"Window end for --day, HH:MM."`
}

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
	"0": 0, "1": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6,
}

func (c *SettingsCmd) Run(ctx *Context) error {
	mgr := ctx.App.Settings
	changed := false

	if c.Locking != nil {
		mgr.SetLockingEnabled(*c.Locking)
		fmt.Printf("Locking enabled: %t\n", *c.Locking)
		changed = true
	}

	if c.Delay != nil {
		applied := mgr.SetEmergencyUnlockDelay(*c.Delay)
		if applied != *c.Delay {
			fmt.Printf("Emergency unlock delay clamped to %d minute(s)\n", applied)
		} else {
			fmt.Printf("Emergency unlock delay: %d minute(s)\n", applied)
		}
		changed = true
	}

	if c.Reset != nil {
		behavior := models.ResetBehavior(*c.Reset)
		customTime := ""
		if c.ResetAt != nil {
			customTime = *c.ResetAt
		}
		if err := mgr.SetResetBehavior(behavior, customTime); err != nil {
			return err
		}
		fmt.Printf("Reset behavior: %s\n", behavior)
		changed = true
	} else if c.ResetAt != nil {
		settings := mgr.Load()
		if settings.ResetBehavior != models.ResetCustom {
			return fmt.Errorf("--reset-at requires the custom reset behavior")
		}
		if err := mgr.SetResetBehavior(models.ResetCustom, *c.ResetAt); err != nil {
			return err
		}
		fmt.Printf("Custom reset time: %s\n", *c.ResetAt)
		changed = true
	}

	if c.Day != nil {
		weekday, ok := weekdayNames[*c.Day]
		if !ok {
			return fmt.Errorf("unknown weekday %q", *c.Day)
		}
		settings := mgr.Load()
		sched := settings.Schedule[weekday]
		if c.Enabled != nil {
			sched.Enabled = *c.Enabled
		}
		if c.Start != nil {
			sched.StartTime = *c.Start
		}
		if c.End != nil {
			sched.EndTime = *c.End
		}
		if err := mgr.UpdateDaySchedule(weekday, sched); err != nil {
			return err
		}
		fmt.Printf("%s schedule updated\n", time.Weekday(weekday))
		changed = true
	} else if c.Enabled != nil || c.Start != nil || c.End != nil {
		return fmt.Errorf("--enabled/--start/--end require --day")
	}

	if c.List || !changed {
		printSettings(mgr.Load())
	}
	return nil
}

func printSettings(s models.AppSettings) {
	fmt.Println("Schedule:")
	for i, sched := range s.Schedule {
		state := "off"
		if sched.Enabled {
			state = fmt.Sprintf("%s - %s", sched.StartTime, sched.EndTime)
		}
		fmt.Printf("  %-9s %s\n", time.Weekday(i).String(), state)
	}
	fmt.Printf("Reset behavior:        %s", s.ResetBehavior)
	if s.ResetBehavior == models.ResetCustom {
		fmt.Printf(" (%s)", s.CustomResetTime)
	}
	fmt.Println()
	fmt.Printf("Locking enabled:       %t\n", s.LockingEnabled)
	fmt.Printf("Emergency unlock delay: %d minute(s)\n", s.EmergencyUnlockDelay)
}
