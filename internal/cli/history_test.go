package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/dawnlock/internal/app"
	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/storage"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "dawnlock.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return &Context{Store: store, App: app.New(store)}
}

func TestHistoryCmdRejectsNonPositiveDays(t *testing.T) {
	ctx := newTestContext(t)
	for _, days := range []int{0, -1} {
		cmd := &HistoryCmd{Days: days}
		if err := cmd.Run(ctx); err == nil {
			t.Errorf("Run() with --days=%d did not error", days)
		}
	}
}

func TestCleanupCmdRejectsNonPositiveKeep(t *testing.T) {
	ctx := newTestContext(t)
	now := time.Now()
	ctx.App.History.RecordCompletion(models.AllRoutineItems(), now.Add(-10*time.Minute), now, false)

	for _, keep := range []int{0, -5} {
		cmd := &CleanupCmd{Keep: keep}
		if err := cmd.Run(ctx); err == nil {
			t.Errorf("Run() with --keep=%d did not error", keep)
		}
	}
	if len(ctx.App.History.LastNDays(10)) != 1 {
		t.Error("history changed by a rejected cleanup")
	}
}
