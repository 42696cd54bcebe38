// Package tui renders timed sessions (pomodoro blocks, breathing steps) as a
// terminal countdown.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
)

// Segment is one timed step of a session.
type Segment struct {
	Label    string
	Detail   string
	Duration time.Duration
	// OnStart runs in the background when the segment begins.
	OnStart func()
}

// Result summarizes how a session ended.
type Result struct {
	// Done has one entry per closed segment, true when it ran to the end.
	// When Stopped, segment len(Done) was interrupted.
	Done      []bool
	Completed int
	Total     int
	Elapsed   time.Duration
	Stopped   bool
}

func (r Result) Finished() bool {
	return !r.Stopped && r.Completed == r.Total
}

type Model struct {
	title    string
	segments []Segment
	index    int
	closed   []bool
	done     time.Duration
	total    time.Duration
	timer    timer.Model
	progress progress.Model
	keys     KeyMap
	help     help.Model
	paused   bool
	stopped  bool
	finished bool
}

func NewModel(title string, segments []Segment) Model {
	var total time.Duration
	for _, s := range segments {
		total += s.Duration
	}
	m := Model{
		title:    title,
		segments: segments,
		total:    total,
		progress: progress.New(progress.WithDefaultGradient()),
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	if len(segments) > 0 {
		m.timer = timer.NewWithInterval(segments[0].Duration, time.Second)
	} else {
		m.finished = true
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.finished {
		return tea.Quit
	}
	return tea.Batch(m.timer.Init(), startCmd(m.segments[0]))
}

func startCmd(s Segment) tea.Cmd {
	if s.OnStart == nil {
		return nil
	}
	return func() tea.Msg {
		s.OnStart()
		return nil
	}
}

// Current returns the running segment, if any.
func (m Model) Current() (Segment, bool) {
	if m.finished || m.index >= len(m.segments) {
		return Segment{}, false
	}
	return m.segments[m.index], true
}

func (m Model) elapsed() time.Duration {
	e := m.done
	if s, ok := m.Current(); ok {
		e += s.Duration - m.timer.Timeout
	}
	return e
}

func (m Model) Result() Result {
	completed := 0
	for _, ok := range m.closed {
		if ok {
			completed++
		}
	}
	return Result{
		Done:      append([]bool(nil), m.closed...),
		Completed: completed,
		Total:     len(m.segments),
		Elapsed:   m.elapsed(),
		Stopped:   m.stopped,
	}
}
