package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/dawnlock/internal/app"
	"github.com/julianstephens/dawnlock/internal/constants"
	"github.com/julianstephens/dawnlock/internal/logger"
)

var findProcessFunc = ps.FindProcess

// Watcher is the foreground poll loop: it re-evaluates the lock policy once
// per tick so window entry, daily reset, and completion are all picked up
// without user interaction. A lockfile keeps it single-instance; a stale
// lockfile from a dead process is reclaimed.
type Watcher struct {
	app      *app.App
	interval time.Duration
	lockfile string

	// OnTransition fires when the lock engages or releases between ticks.
	OnTransition func(locked bool)
}

func New(a *app.App, configDir string) *Watcher {
	return &Watcher{
		app:      a,
		interval: constants.WatcherPollInterval * time.Second,
		lockfile: filepath.Join(configDir, constants.WatcherLockfileName),
	}
}

// Run polls until the context is cancelled. It returns an error when another
// live watcher already holds the lockfile.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.acquireLockfile(); err != nil {
		return err
	}
	defer w.releaseLockfile()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	locked := w.app.Lock.Evaluate(w.app.History)
	logger.Info("Watcher started", "locked", locked, "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Watcher stopped")
			return nil
		case <-ticker.C:
			next := w.app.Lock.Evaluate(w.app.History)
			if next != locked {
				logger.Info("Lock transition", "locked", next)
				if w.OnTransition != nil {
					w.OnTransition(next)
				}
				locked = next
			}
		}
	}
}

func (w *Watcher) acquireLockfile() error {
	if pid, ok := readLockfile(w.lockfile); ok {
		if processAlive(pid) {
			return fmt.Errorf("another watcher is already running (pid %d)", pid)
		}
		logger.Warn("Reclaiming stale watcher lockfile", "pid", pid)
	}

	if err := os.MkdirAll(filepath.Dir(w.lockfile), 0700); err != nil {
		return fmt.Errorf("failed to create lockfile directory: %w", err)
	}
	content := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(w.lockfile, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	return nil
}

func (w *Watcher) releaseLockfile() {
	if pid, ok := readLockfile(w.lockfile); !ok || pid != os.Getpid() {
		return
	}
	if err := os.Remove(w.lockfile); err != nil {
		logger.Warn("Failed to remove watcher lockfile", "error", err)
	}
}

func readLockfile(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, false
	}
	return pid, true
}

func processAlive(pid int) bool {
	process, err := findProcessFunc(pid)
	return err == nil && process != nil
}
