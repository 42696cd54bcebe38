package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.stopped || m.finished {
		return ""
	}
	seg, _ := m.Current()

	status := m.timer.View()
	if m.paused {
		status += " (paused)"
	}

	var pct float64
	if m.total > 0 {
		pct = float64(m.elapsed()) / float64(m.total)
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(m.title),
		labelStyle.Render(seg.Label),
		detailStyle.Render(seg.Detail),
		"",
		fmt.Sprintf("%s  %s", status, dimStyle.Render(fmt.Sprintf("step %d of %d", m.index+1, len(m.segments)))),
		m.progress.ViewAs(pct),
		"",
		m.help.View(m.keys),
	)
	return docStyle.Render(ui)
}
