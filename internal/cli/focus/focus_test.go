package focus

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/config"
	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/narration"
	"github.com/julianstephens/calmind/internal/tui"
)

func setupContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	ctx := cli.New(context.Background(), cfg)
	if err := ctx.Store.Init(ctx.Ctx); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	var out bytes.Buffer
	ctx.Out = &out
	t.Cleanup(ctx.Close)
	return ctx, &out
}

func stubRunner(t *testing.T, res tui.Result) *[]tui.Segment {
	t.Helper()
	var got []tui.Segment
	orig := runner
	runner = func(_ context.Context, _ string, segs []tui.Segment) (tui.Result, error) {
		got = segs
		res.Total = len(segs)
		return res, nil
	}
	t.Cleanup(func() { runner = orig })
	return &got
}

func TestPomodoroStartRecordsSessions(t *testing.T) {
	ctx, out := setupContext(t)
	segs := stubRunner(t, tui.Result{
		Done:      []bool{true, true, false},
		Completed: 2,
		Elapsed:   31 * time.Minute,
		Stopped:   true,
	})

	cmd := &PomodoroStartCmd{Rounds: 2}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if len(*segs) != 4 {
		t.Fatalf("planned %d segments, want 4", len(*segs))
	}
	if (*segs)[0].Label != "Focus" || (*segs)[1].Label != "Short break" {
		t.Errorf("labels = %q, %q", (*segs)[0].Label, (*segs)[1].Label)
	}
	if (*segs)[0].OnStart != nil {
		t.Error("voice cue set with voice disabled")
	}

	sessions := ctx.Data.GetPomodoroSessions(ctx.Ctx, ctx.UserID(), 0)
	if len(sessions) != 4 {
		t.Fatalf("recorded %d sessions, want 4", len(sessions))
	}
	stats := ctx.Data.GetPomodoroStats(ctx.Ctx, ctx.UserID())
	if stats.CompletedSessions != 2 {
		t.Errorf("completed = %d, want 2", stats.CompletedSessions)
	}
	if stats.TotalFocusTime != 25 {
		t.Errorf("focus time = %d, want 25", stats.TotalFocusTime)
	}
	if !strings.Contains(out.String(), "Recorded 4 session(s), 2 completed") {
		t.Errorf("output = %q", out.String())
	}
}

func TestPomodoroStartNoBreak(t *testing.T) {
	ctx, _ := setupContext(t)
	segs := stubRunner(t, tui.Result{Done: []bool{true}, Completed: 1})

	if err := (&PomodoroStartCmd{Rounds: 1, NoBreak: true}).Run(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(*segs) != 1 {
		t.Fatalf("planned %d segments, want 1", len(*segs))
	}
	sessions := ctx.Data.GetPomodoroSessions(ctx.Ctx, ctx.UserID(), 0)
	if len(sessions) != 1 || sessions[0].SessionType != models.SessionWork || !sessions[0].Completed {
		t.Errorf("sessions = %+v", sessions)
	}
}

func TestPomodoroStartValidate(t *testing.T) {
	if err := (&PomodoroStartCmd{Rounds: 0}).Validate(); err == nil {
		t.Error("expected error for zero rounds")
	}
	if err := (&PomodoroStartCmd{Rounds: 3}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPomodoroLogAndStats(t *testing.T) {
	ctx, out := setupContext(t)

	logs := []PomodoroLogCmd{
		{Minutes: 25, Type: "work"},
		{Minutes: 5, Type: "short_break"},
		{Minutes: 25, Type: "work", Incomplete: true},
	}
	for _, l := range logs {
		if err := l.Run(ctx); err != nil {
			t.Fatalf("log failed: %v", err)
		}
	}
	if !strings.Contains(out.String(), "Logged 25 minute work session") {
		t.Errorf("log output = %q", out.String())
	}

	out.Reset()
	if err := (&PomodoroStatsCmd{Recent: 2}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Sessions:        3 (2 completed)", "Focus time:      25m0s", "Recent:"} {
		if !strings.Contains(got, want) {
			t.Errorf("stats output missing %q:\n%s", want, got)
		}
	}
	if n := strings.Count(got, " min  "); n != 2 {
		t.Errorf("listed %d recent sessions, want 2", n)
	}
}

func TestPomodoroLogRejectsZeroMinutes(t *testing.T) {
	ctx, _ := setupContext(t)
	if err := (&PomodoroLogCmd{Minutes: 0, Type: "work"}).Run(ctx); err == nil {
		t.Error("expected error for zero minutes")
	}
}

func TestUnwindCmd(t *testing.T) {
	ctx, out := setupContext(t)
	segs := stubRunner(t, tui.Result{Completed: 16, Elapsed: time.Minute})

	if err := (&UnwindCmd{Pattern: "calm", Minutes: 1}).Run(ctx); err != nil {
		t.Fatalf("unwind failed: %v", err)
	}
	if len(*segs) != 16 {
		t.Fatalf("got %d steps, want 16", len(*segs))
	}
	first := (*segs)[0]
	if first.Label != "Breathe In" || first.Duration != 4*time.Second {
		t.Errorf("first step = %+v", first)
	}
	if !strings.Contains(out.String(), "Well done. 4 breaths") {
		t.Errorf("output = %q", out.String())
	}
}

func TestUnwindCmdErrors(t *testing.T) {
	ctx, _ := setupContext(t)
	stubRunner(t, tui.Result{})

	if err := (&UnwindCmd{Pattern: "box", Minutes: 5}).Run(ctx); err == nil {
		t.Error("expected error for unknown pattern")
	}
	if err := (&UnwindCmd{Pattern: "calm", Minutes: 0}).Run(ctx); err == nil {
		t.Error("expected error for zero minutes")
	}
}

func TestUnwindList(t *testing.T) {
	ctx, out := setupContext(t)
	if err := (&UnwindCmd{List: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"calm", "energize", "focus", "sleep"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("pattern %q not listed", name)
		}
	}
}

func TestSayCmd(t *testing.T) {
	ctx, _ := setupContext(t)

	if err := (&SayCmd{Text: []string{"  "}}).Run(ctx); !errors.Is(err, narration.ErrEmptyText) {
		t.Errorf("err = %v, want ErrEmptyText", err)
	}
	if err := (&SayCmd{Voices: true}).Run(ctx); !errors.Is(err, narration.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
