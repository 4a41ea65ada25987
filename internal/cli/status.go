package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/utils"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	a := ctx.App
	now := time.Now()

	fmt.Printf("Today: %s\n", utils.DateKey(now))

	sched := a.Settings.ScheduleForToday()
	if sched == nil {
		fmt.Println("Window: off today")
	} else {
		state := "closed"
		if a.Settings.IsRoutineActiveNow() {
			state = "open"
		}
		fmt.Printf("Window: %s-%s (%s)\n", sched.StartTime, sched.EndTime, state)
	}

	if state, ok := a.Lock.State(); ok && state.IsLocked {
		fmt.Printf("Locked since %s", state.LockedAt.Format("15:04"))
		if remaining := a.Lock.TimeUntilEmergencyUnlock(); remaining > 0 {
			fmt.Printf(" (emergency unlock in %s)", utils.FormatDuration(remaining))
		} else {
			fmt.Print(" (emergency unlock available)")
		}
		fmt.Println()
	}

	fmt.Println("\nRoutine:")
	for _, item := range models.AllRoutineItems() {
		mark := "○"
		if a.Checklist.IsCompleted(item) {
			mark = "✓"
		}
		fmt.Printf("  %s %-16s %s\n", mark, item, item.Label())
	}

	if start, ok := a.Checklist.StartTime(); ok {
		fmt.Printf("\nStarted at %s", start.Format("15:04"))
		if record := a.History.TodayRecord(); record != nil {
			fmt.Printf(", finished in %s", utils.FormatDuration(record.TotalTime()))
		}
		fmt.Println()
	}

	streaks := a.History.StreakData()
	fmt.Printf("\nStreak: %d day(s) (longest %d)\n", streaks.CurrentStreak, streaks.LongestStreak)
	return nil
}
