package app

import (
	"github.com/julianstephens/dawnlock/internal/checklist"
	"github.com/julianstephens/dawnlock/internal/history"
	"github.com/julianstephens/dawnlock/internal/lock"
	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/settings"
	"github.com/julianstephens/dawnlock/internal/storage"
)

// App is the single composition point: it builds every manager against one
// storage provider and passes references explicitly. Nothing else holds
// global state.
type App struct {
	Store     storage.Provider
	Settings  *settings.Manager
	Checklist *checklist.Manager
	History   *history.Ledger
	Lock      *lock.Engine
}

func New(store storage.Provider) *App {
	settingsMgr := settings.NewManager(store)
	checklistMgr := checklist.NewManager(store)
	ledger := history.NewLedger(store)

	return &App{
		Store:     store,
		Settings:  settingsMgr,
		Checklist: checklistMgr,
		History:   ledger,
		Lock:      lock.NewEngine(store, settingsMgr, checklistMgr),
	}
}

// MarkComplete marks one item and drives the exactly-once completion hook:
// when the mark transitions the checklist to fully complete, the completion
// is recorded and any active lock released.
func (a *App) MarkComplete(item models.RoutineItem) error {
	wasComplete := a.Checklist.IsComplete()
	if err := a.Checklist.MarkComplete(item); err != nil {
		return err
	}
	if !wasComplete && a.Checklist.IsComplete() {
		a.Lock.CompleteIfDone(a.History)
	}
	return nil
}

// Toggle flips one item, driving the completion hook on an upward
// transition just like MarkComplete.
func (a *App) Toggle(item models.RoutineItem) error {
	if a.Checklist.IsCompleted(item) {
		return a.Checklist.MarkIncomplete(item)
	}
	return a.MarkComplete(item)
}
