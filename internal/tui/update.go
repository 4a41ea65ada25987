package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/services"
	"github.com/julianstephens/dawnlock/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-8, 60)
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		if m.state != stateDone && m.state != stateConfirm {
			m.app.Lock.Evaluate(m.app.History)
			if !m.app.Lock.IsLocked() {
				m.state = stateDone
				if m.message == "" {
					m.message = "Routine complete. Device unlocked!"
				}
			}
		}
		return m, tickCmd()
	}

	switch m.state {
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateReps:
		return m.updateReps(msg)
	case stateDone:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	default:
		return m.updateChecklist(msg)
	}
}

func (m Model) updateChecklist(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Select):
		return m.activateItem(m.items[m.cursor])

	case key.Matches(keyMsg, m.keys.Emergency):
		return m.startEmergencyUnlock()
	}
	return m, nil
}

func (m Model) activateItem(item models.RoutineItem) (tea.Model, tea.Cmd) {
	m.message = ""

	if m.app.Checklist.IsCompleted(item) {
		if err := m.app.Checklist.MarkIncomplete(item); err != nil {
			m.message = err.Error()
		}
		return m, nil
	}

	switch item {
	case models.ItemPushups:
		m.reps.Reset()
		m.reps.Start(nil)
		m.previousState = m.state
		m.state = stateReps
		return m, nil

	case models.ItemMakeBed, models.ItemSkincare:
		if _, err := m.photos.TakePhoto(string(item)); err != nil {
			m.message = fmt.Sprintf("Photo failed: %v", err)
			return m, nil
		}

	case models.ItemReviewCalendar:
		if !m.calendar.Open() {
			m.message = "Could not open the calendar app."
		}
	}

	if err := m.app.MarkComplete(item); err != nil {
		m.message = err.Error()
	}
	return m, nil
}

func (m Model) updateReps(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.Type == tea.KeyEsc {
		m.reps.Stop()
		m.state = stateChecklist
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Rep), key.Matches(keyMsg, m.keys.Select):
		m.reps.Increment()
		if m.reps.Data().State == services.RepDone {
			m.reps.Stop()
			m.state = stateChecklist
			if err := m.app.MarkComplete(models.ItemPushups); err != nil {
				m.message = err.Error()
			}
		}
	}
	return m, nil
}

func (m Model) startEmergencyUnlock() (tea.Model, tea.Cmd) {
	if remaining := m.app.Lock.TimeUntilEmergencyUnlock(); remaining > 0 {
		m.message = fmt.Sprintf("Emergency unlock available in %s.", utils.FormatDuration(remaining))
		return m, nil
	}

	m.confirmUnlock = false
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Unlock without finishing the routine?").
			Description("This ends today's session and records nothing.").
			Value(&m.confirmUnlock),
	))
	m.previousState = m.state
	m.state = stateConfirm
	return m, m.form.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.state = m.previousState
		if m.confirmUnlock {
			if err := m.app.Lock.EmergencyUnlock(); err != nil {
				m.message = err.Error()
			} else {
				m.state = stateDone
				m.message = "Emergency unlock granted."
			}
		}
		m.form = nil
	}
	return m, cmd
}
