package focus

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/logger"
	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/scheduler"
	"github.com/julianstephens/calmind/internal/tui"
)

type PomodoroCmd struct {
	Start PomodoroStartCmd `cmd:"" help:"Run focus blocks with breaks." default:"1"`
	Log   PomodoroLogCmd   `cmd:"" help:"Record a session run elsewhere."`
	Stats PomodoroStatsCmd `cmd:"" help:"Show focus statistics and recent sessions."`
}

// runner is swapped in tests.
var runner = tui.Run

var phaseLabels = map[models.SessionType]string{
	models.SessionWork:       "Focus",
	models.SessionShortBreak: "Short break",
	models.SessionLongBreak:  "Long break",
}

var phaseCues = map[models.SessionType]string{
	models.SessionWork:       "Time to focus.",
	models.SessionShortBreak: "Take a short break.",
	models.SessionLongBreak:  "Great work. Take a long break.",
}

type PomodoroStartCmd struct {
	Rounds  int  `short:"r" default:"1" help:"Focus blocks to run, each followed by its break."`
	NoBreak bool `help:"Skip the break after the last block."`
	Voice   bool `negatable:"" default:"true" help:"Announce each phase."`
}

func (c *PomodoroStartCmd) Validate() error {
	if c.Rounds < 1 {
		return errors.New("rounds must be at least 1")
	}
	return nil
}

func (c *PomodoroStartCmd) Run(ctx *cli.Context) error {
	sched, err := scheduler.New(ctx.PomodoroSettings())
	if err != nil {
		return err
	}

	userID := ctx.UserID()
	sessions := ctx.Data.GetPomodoroSessions(ctx.Ctx, userID, 0)
	done := scheduler.CompletedWorkToday(sessions, ctx.Now())

	phases := sched.Plan(c.Rounds, done)
	if c.NoBreak {
		phases = phases[:len(phases)-1]
	}

	segments := make([]tui.Segment, len(phases))
	for i, p := range phases {
		seg := tui.Segment{
			Label:    phaseLabels[p.Type],
			Detail:   fmt.Sprintf("Pomodoro #%d today", p.Round),
			Duration: p.Duration,
		}
		if c.Voice {
			cue := phaseCues[p.Type]
			seg.OnStart = func() { ctx.Narrator.Speak(ctx.Ctx, cue) }
		}
		segments[i] = seg
	}

	ctx.PerformAutomaticBackup()
	ctx.Printf("Planned %s across %d phase(s)\n", scheduler.TotalDuration(phases), len(phases))
	res, err := runner(ctx.Ctx, "Pomodoro", segments)
	if err != nil {
		return err
	}

	recorded := 0
	for i, ok := range res.Done {
		if err := record(ctx, userID, phases[i], ok); err != nil {
			return err
		}
		recorded++
	}
	if res.Stopped && len(res.Done) < len(phases) {
		if err := record(ctx, userID, phases[len(res.Done)], false); err != nil {
			return err
		}
		recorded++
	}

	ctx.Printf("Recorded %d session(s), %d completed, %s focused\n", recorded, res.Completed, res.Elapsed.Round(time.Second))
	return nil
}

func record(ctx *cli.Context, userID string, p scheduler.Phase, completed bool) error {
	_, err := ctx.Data.CreatePomodoroSession(ctx.Ctx, models.NewPomodoroSession{
		UserID:      userID,
		Duration:    int(p.Duration / time.Minute),
		SessionType: p.Type,
		Completed:   completed,
	})
	if err != nil {
		return fmt.Errorf("failed to save pomodoro session: %w", err)
	}
	logger.Debug("Recorded pomodoro session", "type", p.Type, "completed", completed)
	return nil
}

type PomodoroLogCmd struct {
	Minutes    int    `arg:"" help:"Session length in minutes."`
	Type       string `short:"t" enum:"work,short_break,long_break" default:"work" help:"Session type (work|short_break|long_break)."`
	Incomplete bool   `help:"Mark the session as not completed."`
}

func (c *PomodoroLogCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Data.CreatePomodoroSession(ctx.Ctx, models.NewPomodoroSession{
		UserID:      ctx.UserID(),
		Duration:    c.Minutes,
		SessionType: models.SessionType(c.Type),
		Completed:   !c.Incomplete,
	})
	if err != nil {
		return fmt.Errorf("failed to save pomodoro session: %w", err)
	}
	ctx.Printf("✓ Logged %d minute %s session\n", s.Duration, s.SessionType)
	return nil
}

type PomodoroStatsCmd struct {
	Recent int `short:"n" default:"5" help:"Recent sessions to show."`
}

func (c *PomodoroStatsCmd) Run(ctx *cli.Context) error {
	userID := ctx.UserID()
	stats := ctx.Data.GetPomodoroStats(ctx.Ctx, userID)

	ctx.Printf("Sessions:        %s (%s completed)\n", humanize.Comma(int64(stats.TotalSessions)), humanize.Comma(int64(stats.CompletedSessions)))
	ctx.Printf("Focus time:      %s\n", (time.Duration(stats.TotalFocusTime) * time.Minute).String())
	ctx.Printf("Average session: %d min\n", stats.AverageSessionLength)

	sessions := ctx.Data.GetPomodoroSessions(ctx.Ctx, userID, c.Recent)
	if len(sessions) == 0 {
		return nil
	}
	ctx.Println("\nRecent:")
	now := ctx.Now()
	for _, s := range sessions {
		mark := "✓"
		if !s.Completed {
			mark = "·"
		}
		ctx.Printf("  %s %-11s %3d min  %s\n", mark, s.SessionType, s.Duration, cli.FormatWhen(s.CreatedAt, now))
	}
	return nil
}
