package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/dawnlock/internal/constants"
	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/utils"
	"github.com/julianstephens/dawnlock/internal/watcher"
)

type InitCmd struct {
	Force bool `help:"Recreate the store even if one already exists."`
}

func (c *InitCmd) Run(ctx *Context) error {
	path := ctx.Store.GetConfigPath()
	if c.Force {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing store: %w", err)
		}
	}
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.App.Settings.Save(ctx.App.Settings.Load())
	fmt.Printf("Initialized %s store at %s\n", constants.AppName, path)
	return nil
}

type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *Context) error {
	w := watcher.New(ctx.App, ctx.ConfigDir())
	w.OnTransition = func(locked bool) {
		if locked {
			fmt.Println("Routine window open: device locked.")
		} else {
			fmt.Println("Device unlocked.")
		}
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching. Press Ctrl+C to stop.")
	return w.Run(runCtx)
}

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	ok := true

	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("✗ store missing at %s (run 'dawnlock init')\n", path)
		ok = false
	} else {
		fmt.Printf("✓ store at %s\n", path)
	}

	settings := ctx.App.Settings.Load()
	enabledDays := 0
	for i, sched := range settings.Schedule {
		if !sched.Enabled {
			continue
		}
		enabledDays++
		start, startErr := utils.ParseClock(sched.StartTime)
		end, endErr := utils.ParseClock(sched.EndTime)
		if startErr != nil || endErr != nil {
			fmt.Printf("✗ %s window has an invalid time (%s-%s)\n",
				time.Weekday(i), sched.StartTime, sched.EndTime)
			ok = false
		} else if start > end {
			fmt.Printf("✗ %s window starts after it ends (%s-%s)\n",
				time.Weekday(i), sched.StartTime, sched.EndTime)
			ok = false
		}
	}
	if enabledDays == 0 {
		fmt.Println("! no days have a routine window enabled")
	} else {
		fmt.Printf("✓ %d day(s) scheduled\n", enabledDays)
	}

	if settings.ResetBehavior == models.ResetCustom && !utils.ValidClock(settings.CustomResetTime) {
		fmt.Printf("✗ custom reset time %q is not HH:MM\n", settings.CustomResetTime)
		ok = false
	}

	if state, present := ctx.App.Lock.State(); present && state.IsLocked {
		fmt.Printf("! device is locked (since %s)\n", state.LockedAt.Format(constants.TimeFormat))
	}

	if count := len(ctx.App.History.LastNDays(constants.HistoryRetentionDays)); count > 0 {
		fmt.Printf("✓ %d day(s) of history\n", count)
	}

	if !ok {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
