package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dawnlock/internal/app"
	"github.com/julianstephens/dawnlock/internal/cli"
	"github.com/julianstephens/dawnlock/internal/constants"
	"github.com/julianstephens/dawnlock/internal/errors"
	"github.com/julianstephens/dawnlock/internal/logger"
	"github.com/julianstephens/dawnlock/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store path. A .json extension selects the JSON backend; anything else uses SQLite." default:"~/.config/dawnlock/dawnlock.db"`
	Debug   bool   `help:"Verbose logging to stderr."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize dawnlock storage."`
	Status cli.StatusCmd `cmd:"" help:"Show today's routine, window, and lock state." default:"1"`
	Items  cli.ItemsCmd  `cmd:"" help:"List the routine items."`
	Mark   cli.MarkCmd   `cmd:"" help:"Mark a routine item complete."`
	Unmark cli.UnmarkCmd `cmd:"" help:"Mark a routine item incomplete."`
	Toggle cli.ToggleCmd `cmd:"" help:"Flip a routine item."`
	Reset  cli.ResetCmd  `cmd:"" help:"Reset the daily checklist."`

	History cli.HistoryCmd `cmd:"" help:"Show recent completion history."`
	Streak  cli.StreakCmd  `cmd:"" help:"Show streak statistics."`
	Cleanup cli.CleanupCmd `cmd:"" help:"Trim old history records."`

	Settings cli.SettingsCmd `cmd:"" help:"Show or change application settings."`

	Lock struct {
		Check     cli.LockCheckCmd     `cmd:"" help:"Evaluate the lock policy and report the result." default:"1"`
		Screen    cli.LockScreenCmd    `cmd:"" help:"Show the interactive lock screen."`
		Emergency cli.LockEmergencyCmd `cmd:"" help:"Request a time-delayed emergency unlock."`
	} `cmd:"" help:"Device lock operations."`

	Watch  cli.WatchCmd  `cmd:"" help:"Run the foreground lock watcher."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Morning routine checklist with a device lock that opens when the routine is done"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := storage.ExpandPath(CLI.Config)

	var store storage.Provider
	if strings.HasSuffix(configPath, ".json") {
		store = storage.NewJSONStore(configPath)
	} else {
		store = storage.NewSQLiteStore(configPath)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.Format(err))
		os.Exit(1)
	}

	// The init command creates the store itself; everything else loads it.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
	}

	appCtx := &cli.Context{
		Store: store,
		App:   app.New(store),
		Debug: CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
