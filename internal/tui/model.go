package tui

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dawnlock/internal/app"
	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/services"
)

type sessionState int

const (
	stateChecklist sessionState = iota
	stateReps
	stateConfirm
	stateDone
)

// defaultRepTarget is the push-up count the counting session aims for.
const defaultRepTarget = 10

type tickMsg time.Time

type Model struct {
	app           *app.App
	state         sessionState
	previousState sessionState
	keys          KeyMap
	help          help.Model
	progress      progress.Model
	form          *huh.Form
	confirmUnlock bool

	reps     *services.RepCounter
	photos   services.PhotoService
	calendar services.Launcher

	items    []models.RoutineItem
	cursor   int
	now      time.Time
	message  string
	quitting bool
	width    int
	height   int
}

func NewModel(a *app.App, configDir string) Model {
	return Model{
		app:      a,
		state:    stateChecklist,
		keys:     defaultKeys,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		reps:     services.NewRepCounter(defaultRepTarget),
		photos:   services.NewDirPhotoService(filepath.Join(configDir, "photos")),
		calendar: services.NewCalendarLauncher(),
		items:    models.AllRoutineItems(),
		now:      time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run shows the lock screen until the routine completes, an emergency unlock
// is granted, or the user leaves.
func Run(a *app.App, configDir string) error {
	p := tea.NewProgram(NewModel(a, configDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
