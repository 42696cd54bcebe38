package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/calmind/internal/logger"
)

// Interactive reports whether f is a terminal that can host the countdown.
func Interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run shows the countdown full screen when stdout is a terminal and falls
// back to plain line output otherwise.
func Run(ctx context.Context, title string, segments []Segment) (Result, error) {
	if !Interactive(os.Stdout) || !Interactive(os.Stdin) {
		return RunPlain(ctx, os.Stdout, title, segments, time.After)
	}

	p := tea.NewProgram(NewModel(title, segments), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if m, ok := final.(Model); ok && ctx.Err() != nil {
			res := m.Result()
			res.Stopped = true
			return res, nil
		}
		return Result{}, fmt.Errorf("countdown failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Result(), nil
}

// RunPlain prints one line per segment and waits out each one. after is
// time.After outside tests.
func RunPlain(ctx context.Context, w io.Writer, title string, segments []Segment, after func(time.Duration) <-chan time.Time) (Result, error) {
	res := Result{Total: len(segments)}
	fmt.Fprintln(w, title)
	for i, s := range segments {
		line := fmt.Sprintf("[%d/%d] %s (%s)", i+1, len(segments), s.Label, s.Duration)
		if s.Detail != "" {
			line += " - " + s.Detail
		}
		fmt.Fprintln(w, line)
		if s.OnStart != nil {
			go s.OnStart()
		}
		select {
		case <-ctx.Done():
			logger.Debug("Countdown interrupted", "step", i+1, "error", ctx.Err())
			res.Stopped = true
			fmt.Fprintln(w, "Stopped.")
			return res, nil
		case <-after(s.Duration):
			res.Done = append(res.Done, true)
			res.Completed++
			res.Elapsed += s.Duration
		}
	}
	fmt.Fprintln(w, "Done.")
	return res, nil
}
