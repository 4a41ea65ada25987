package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateConfirm:
		return docStyle.Render(m.form.View())
	case stateReps:
		return docStyle.Render(m.repsView())
	case stateDone:
		return docStyle.Render(m.doneView())
	}
	return docStyle.Render(m.checklistView())
}

func (m Model) checklistView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Morning routine"))
	b.WriteString("\n")
	b.WriteString(dangerStyle.Render("Device locked until the routine is done."))
	b.WriteString("\n\n")

	completed := 0
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		if m.app.Checklist.IsCompleted(item) {
			completed++
			b.WriteString(fmt.Sprintf("%s%s\n", cursor, doneStyle.Render("✓ "+item.Label())))
		} else {
			b.WriteString(fmt.Sprintf("%s%s\n", cursor, pendingStyle.Render("○ "+item.Label())))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(float64(completed) / float64(len(m.items))))
	b.WriteString("\n")

	if remaining := m.app.Lock.TimeUntilEmergencyUnlock(); remaining > 0 {
		b.WriteString(warningStyle.Render(
			fmt.Sprintf("\nEmergency unlock in %s", utils.FormatDuration(remaining))))
		b.WriteString("\n")
	} else if m.app.Lock.IsLocked() {
		b.WriteString(warningStyle.Render("\nEmergency unlock available (press e)"))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n" + warningStyle.Render(m.message) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) repsView() string {
	data := m.reps.Data()

	var b strings.Builder
	b.WriteString(titleStyle.Render(models.ItemPushups.Label()))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%d / %d\n\n", data.Count, data.TargetCount))
	b.WriteString(m.progress.ViewAs(float64(data.Count) / float64(data.TargetCount)))
	b.WriteString("\n\n")
	b.WriteString(pendingStyle.Render("space counts a rep, esc goes back"))
	return b.String()
}

func (m Model) doneView() string {
	var b strings.Builder
	b.WriteString(doneStyle.Render(m.message))
	b.WriteString("\n\n")

	streaks := m.app.History.StreakData()
	if streaks.CurrentStreak > 0 {
		b.WriteString(fmt.Sprintf("Streak: %d day(s) (longest %d)\n\n", streaks.CurrentStreak, streaks.LongestStreak))
	}

	b.WriteString(pendingStyle.Render("press any key to exit"))
	return b.String()
}
