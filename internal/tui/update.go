package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-8, 10), 60)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.stopped = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			return m, m.timer.Toggle()
		case key.Matches(msg, m.keys.Skip):
			return m.advance(false)
		}

	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		if msg.ID != m.timer.ID() {
			return m, nil
		}
		return m.advance(true)
	}

	return m, nil
}

// advance closes the current segment and starts the next one. A skipped
// segment only counts the time it actually ran.
func (m Model) advance(full bool) (tea.Model, tea.Cmd) {
	if m.finished {
		return m, tea.Quit
	}
	if full {
		m.done += m.segments[m.index].Duration
	} else {
		m.done += m.segments[m.index].Duration - m.timer.Timeout
	}
	m.closed = append(m.closed, full)
	m.index++
	m.paused = false
	if m.index >= len(m.segments) {
		m.finished = true
		m.timer = timer.Model{}
		return m, tea.Quit
	}
	next := m.segments[m.index]
	m.timer = timer.NewWithInterval(next.Duration, time.Second)
	return m, tea.Batch(m.timer.Init(), startCmd(next))
}
