package tasks

import (
	"fmt"
	"sort"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/models"
)

type GoalCmd struct {
	Add    GoalAddCmd    `cmd:"" help:"Add a goal, milestone or reminder to the calendar."`
	List   GoalListCmd   `cmd:"" help:"List calendar entries." default:"1"`
	Toggle GoalToggleCmd `cmd:"" help:"Mark a goal done or not done."`
	Delete GoalDeleteCmd `cmd:"" help:"Delete a goal."`
}

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Date        string `arg:"" help:"Calendar date (YYYY-MM-DD)."`
	Description string `short:"d" help:"Longer description."`
	Type        string `short:"t" enum:"goal,milestone,reminder" default:"goal" help:"Entry type (goal|milestone|reminder)."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.Data.CreateGoal(ctx.Ctx, models.NewGoal{
		UserID:      ctx.UserID(),
		Title:       c.Title,
		Description: c.Description,
		Date:        c.Date,
		Type:        models.GoalType(c.Type),
	})
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	ctx.Printf("✓ Added %s %q on %s (ID: %s)\n", goal.Type, goal.Title, goal.Date, cli.ShortID(goal.ID))
	return nil
}

type GoalListCmd struct {
	Date  string `help:"Only this day (YYYY-MM-DD)."`
	Month string `short:"m" help:"Only this month (YYYY-MM)."`
	Type  string `short:"t" help:"Only this type (goal|milestone|reminder)."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	filter := models.GoalFilter{Date: c.Date, Month: c.Month, Type: models.GoalType(c.Type)}
	if err := filter.Validate(); err != nil {
		return err
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return fmt.Errorf("unknown goal type %q", c.Type)
	}

	goals := ctx.Data.GetGoals(ctx.Ctx, ctx.UserID(), filter)
	if len(goals) == 0 {
		ctx.Println("No goals found")
		return nil
	}
	sortByDate(goals)

	current := ""
	for _, g := range goals {
		if g.Date != current {
			current = g.Date
			ctx.Printf("%s\n", current)
		}
		mark := " "
		if g.Completed {
			mark = "x"
		}
		ctx.Printf("  [%s] %s  %s (%s)\n", mark, cli.ShortID(g.ID), g.Title, g.Type)
	}
	return nil
}

func findGoal(ctx *cli.Context, ref string) (models.Goal, error) {
	return cli.MatchID(ctx.Data.GetGoals(ctx.Ctx, ctx.UserID()), func(g models.Goal) string { return g.ID }, ref)
}

type GoalToggleCmd struct {
	ID string `arg:"" help:"Goal ID or prefix."`
}

func (c *GoalToggleCmd) Run(ctx *cli.Context) error {
	goal, err := findGoal(ctx, c.ID)
	if err != nil {
		return err
	}
	updated, err := ctx.Data.ToggleGoal(ctx.Ctx, goal)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if updated.Completed {
		ctx.Printf("✓ Completed %q\n", updated.Title)
	} else {
		ctx.Printf("Reopened %q\n", updated.Title)
	}
	return nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal ID or prefix."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	goal, err := findGoal(ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ok, err := ctx.Data.DeleteGoal(ctx.Ctx, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if !ok {
		return fmt.Errorf("goal %s was not deleted", cli.ShortID(goal.ID))
	}
	ctx.Printf("Deleted goal %q\n", goal.Title)
	return nil
}

// sortByDate orders goals by calendar date, keeping newest-first within a day.
func sortByDate(goals []models.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].Date < goals[j].Date
	})
}
