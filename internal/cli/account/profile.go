package account

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/models"
)

type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"" help:"Show your profile." default:"1"`
	Set  ProfileSetCmd  `cmd:"" help:"Update your profile."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	userID := ctx.UserID()
	p, ok := ctx.Data.GetUserProfile(ctx.Ctx, userID)
	if !ok {
		ctx.Println("No profile yet. Create one with: calmind profile set")
		return nil
	}

	name := p.FullName
	if name == "" {
		name = "(no name)"
	}
	ctx.Printf("%s\n", name)
	if p.Email != "" {
		ctx.Printf("  email:  %s\n", p.Email)
	}
	if p.Bio != "" {
		ctx.Printf("  bio:    %s\n", p.Bio)
	}
	if p.AvatarURL != "" {
		ctx.Printf("  avatar: %s\n", p.AvatarURL)
	}
	if len(p.StudyGoals) > 0 {
		ctx.Println("  goals:")
		for _, g := range p.StudyGoals {
			ctx.Printf("    - %s\n", g)
		}
	}

	s := ctx.PomodoroSettings()
	ctx.Printf("\nPomodoro: %dm focus, %dm short break, %dm long break\n", s.WorkMin, s.ShortBreakMin, s.LongBreakMin)
	pr := p.Preferences
	ctx.Printf("Reminders: %s  Email: %s  Sounds: %s  Dark mode: %s\n",
		onOff(pr.StudyReminders), onOff(pr.EmailNotifications), onOff(pr.SoundEffects), onOff(pr.DarkMode))

	stats := ctx.Data.GetPomodoroStats(ctx.Ctx, userID)
	ctx.Printf("\nFocused %d min over %d completed session(s)\n", stats.TotalFocusTime, stats.CompletedSessions)
	if result, ok := ctx.Data.GetQuizResult(ctx.Ctx, userID); ok {
		ctx.Printf("Learning style: %s\n", result.Primary)
	}
	ctx.Printf("Updated %s\n", cli.FormatWhen(p.UpdatedAt, ctx.Now()))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

type ProfileSetCmd struct {
	Name        *string  `help:"Full name."`
	Bio         *string  `help:"Short bio."`
	Avatar      *string  `help:"Avatar URL."`
	Goal        []string `help:"Study goal; repeat to set several."`
	Pomodoro    *int     `help:"Focus length in minutes."`
	ShortBreak  *int     `help:"Short break length in minutes."`
	LongBreak   *int     `help:"Long break length in minutes."`
	Reminders   string   `help:"Study reminders (on|off)."`
	Sounds      string   `help:"Sound effects (on|off)."`
	Interactive bool     `short:"i" help:"Edit in a form."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	userID := ctx.UserID()
	current, _ := ctx.Data.GetUserProfile(ctx.Ctx, userID)

	if c.Interactive {
		if !ctx.Interactive {
			return errors.New("--interactive needs a terminal")
		}
		if err := c.fillFromForm(current); err != nil {
			return err
		}
	}

	update, err := c.update(current)
	if err != nil {
		return err
	}
	if update.Empty() {
		return errors.New("nothing to update")
	}
	if u, ok := ctx.Auth.Current(); ok && current.Email == "" {
		update.Email = &u.Email
	}

	if _, err := ctx.Data.UpdateUserProfile(ctx.Ctx, userID, update); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	ctx.Println("✓ Profile updated")
	return nil
}

func (c *ProfileSetCmd) update(current models.UserProfile) (models.ProfileUpdate, error) {
	var u models.ProfileUpdate
	u.FullName = trimmed(c.Name)
	u.Bio = trimmed(c.Bio)
	u.AvatarURL = trimmed(c.Avatar)
	if c.Goal != nil {
		goals := make([]string, 0, len(c.Goal))
		for _, g := range c.Goal {
			if g = strings.TrimSpace(g); g != "" {
				goals = append(goals, g)
			}
		}
		u.StudyGoals = goals
	}

	prefs := current.Preferences
	changed := false
	for _, f := range []struct {
		name string
		val  *int
		dst  *int
	}{
		{"pomodoro", c.Pomodoro, &prefs.PomodoroLength},
		{"short-break", c.ShortBreak, &prefs.ShortBreakLength},
		{"long-break", c.LongBreak, &prefs.LongBreakLength},
	} {
		if f.val == nil {
			continue
		}
		if *f.val < 1 || *f.val > 180 {
			return models.ProfileUpdate{}, fmt.Errorf("%w: --%s must be between 1 and 180 minutes", models.ErrInvalid, f.name)
		}
		*f.dst = *f.val
		changed = true
	}
	for _, f := range []struct {
		name string
		val  string
		dst  *bool
	}{
		{"reminders", c.Reminders, &prefs.StudyReminders},
		{"sounds", c.Sounds, &prefs.SoundEffects},
	} {
		switch strings.ToLower(f.val) {
		case "":
			continue
		case "on":
			*f.dst = true
		case "off":
			*f.dst = false
		default:
			return models.ProfileUpdate{}, fmt.Errorf("%w: --%s must be on or off", models.ErrInvalid, f.name)
		}
		changed = true
	}
	if changed {
		u.Preferences = &prefs
	}
	return u, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// fillFromForm prompts for the common fields, prefilled from p. Flags given
// on the command line take precedence over the form's starting values.
func (c *ProfileSetCmd) fillFromForm(p models.UserProfile) error {
	name := valueOr(c.Name, p.FullName)
	bio := valueOr(c.Bio, p.Bio)
	goals := strings.Join(p.StudyGoals, ", ")
	if c.Goal != nil {
		goals = strings.Join(c.Goal, ", ")
	}
	pomodoro := minutesOr(c.Pomodoro, p.Preferences.PomodoroLength)
	reminders := p.Preferences.StudyReminders

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full name").Value(&name),
			huh.NewText().Title("Bio").Value(&bio),
			huh.NewInput().Title("Study goals").Description("Comma separated").Value(&goals),
			huh.NewInput().
				Title("Focus length (min)").
				Value(&pomodoro).
				Validate(validMinutes),
			huh.NewConfirm().Title("Study reminders").Value(&reminders),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	c.Name, c.Bio = &name, &bio
	c.Goal = strings.Split(goals, ",")
	if pomodoro != "" {
		n, _ := strconv.Atoi(pomodoro)
		c.Pomodoro = &n
	}
	c.Reminders = onOff(reminders)
	return nil
}

func valueOr(s *string, fallback string) string {
	if s != nil {
		return *s
	}
	return fallback
}

func minutesOr(n *int, fallback int) string {
	if n != nil {
		return strconv.Itoa(*n)
	}
	if fallback > 0 {
		return strconv.Itoa(fallback)
	}
	return ""
}

func validMinutes(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if n < 1 || n > 180 {
		return fmt.Errorf("must be between 1 and 180 minutes")
	}
	return nil
}
