package tui

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
)

func testSegments() []Segment {
	return []Segment{
		{Label: "Breathe In", Detail: "Breathe in slowly and deeply", Duration: 4 * time.Second},
		{Label: "Hold", Duration: 4 * time.Second},
		{Label: "Breathe Out", Duration: 6 * time.Second},
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func timeout(m Model) Model {
	next, _ := m.Update(timer.TimeoutMsg{ID: m.timer.ID()})
	return next.(Model)
}

func TestModelAdvancesOnTimeout(t *testing.T) {
	m := NewModel("Unwind", testSegments())

	m = timeout(m)
	if seg, ok := m.Current(); !ok || seg.Label != "Hold" {
		t.Fatalf("after first timeout current = %+v, %v", seg, ok)
	}

	// a stale timeout from the previous timer is ignored
	next, _ := m.Update(timer.TimeoutMsg{ID: -1})
	if seg, _ := next.(Model).Current(); seg.Label != "Hold" {
		t.Errorf("stale timeout advanced the model to %q", seg.Label)
	}

	m = timeout(timeout(m))
	res := m.Result()
	if !res.Finished() || res.Completed != 3 || res.Elapsed != 14*time.Second {
		t.Errorf("Result() = %+v", res)
	}
	if len(res.Done) != 3 || !res.Done[2] {
		t.Errorf("Done = %v", res.Done)
	}
	if m.View() != "" {
		t.Error("finished model should render nothing")
	}
}

func TestModelKeys(t *testing.T) {
	m := NewModel("Pomodoro", testSegments())

	next, _ := m.Update(keyMsg("p"))
	m = next.(Model)
	if !m.paused || !strings.Contains(m.View(), "paused") {
		t.Error("expected paused view")
	}

	next, _ = m.Update(keyMsg("n"))
	m = next.(Model)
	if seg, _ := m.Current(); seg.Label != "Hold" || m.paused {
		t.Errorf("skip left current = %q paused = %v", seg.Label, m.paused)
	}

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	res := m.Result()
	if !res.Stopped || res.Finished() || res.Completed != 0 {
		t.Errorf("Result() after quit = %+v", res)
	}
	if len(res.Done) != 1 || res.Done[0] {
		t.Errorf("skipped segment should be recorded as not done, got %v", res.Done)
	}
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should emit tea.QuitMsg")
	}
}

func TestModelView(t *testing.T) {
	view := NewModel("Unwind", testSegments()).View()
	for _, want := range []string{"Unwind", "Breathe In", "Breathe in slowly and deeply", "step 1 of 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEmptyModel(t *testing.T) {
	m := NewModel("Empty", nil)
	if !m.Result().Finished() {
		t.Error("empty session should count as finished")
	}
	if m.Init() == nil {
		t.Error("empty session should quit immediately")
	}
}

func instant(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func TestRunPlain(t *testing.T) {
	var started atomic.Int32
	segs := testSegments()
	for i := range segs {
		segs[i].OnStart = func() { started.Add(1) }
	}

	var buf bytes.Buffer
	res, err := RunPlain(context.Background(), &buf, "Unwind", segs, instant)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Finished() || res.Elapsed != 14*time.Second {
		t.Errorf("Result = %+v", res)
	}
	out := buf.String()
	for _, want := range []string{"Unwind", "[1/3] Breathe In (4s) - Breathe in slowly and deeply", "[3/3] Breathe Out (6s)", "Done."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunPlainCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	never := func(time.Duration) <-chan time.Time { return nil }
	var buf bytes.Buffer
	res, err := RunPlain(ctx, &buf, "Pomodoro", testSegments(), never)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Stopped || res.Completed != 0 || !strings.Contains(buf.String(), "Stopped.") {
		t.Errorf("Result = %+v output = %q", res, buf.String())
	}
}
