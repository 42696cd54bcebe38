package system

import (
	"fmt"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/validation"
)

type ValidateCmd struct {
	MaxGoals int  `default:"5" help:"Flag days with more open goals than this (0 disables)."`
	Strict   bool `help:"Exit non-zero when conflicts are found."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	userID := ctx.UserID()
	tasks := ctx.Data.GetTasks(ctx.Ctx, userID)
	goals := ctx.Data.GetGoals(ctx.Ctx, userID)

	v := &validation.Validator{MaxGoalsPerDay: cmd.MaxGoals}
	result := v.Validate(tasks, goals, ctx.Now())

	ctx.Printf("Checked %d task(s) and %d goal(s)\n", len(tasks), len(goals))
	ctx.Printf("%s", result.FormatReport())
	if !result.HasConflicts() {
		ctx.Println()
	}
	if cmd.Strict && result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}
	return nil
}
