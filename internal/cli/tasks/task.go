package tasks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/models"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a new task."`
	List   TaskListCmd   `cmd:"" help:"List tasks." default:"1"`
	Edit   TaskEditCmd   `cmd:"" help:"Edit an existing task."`
	Toggle TaskToggleCmd `cmd:"" help:"Mark a task done or not done."`
	Delete TaskDeleteCmd `cmd:"" help:"Delete a task."`
}

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `short:"d" help:"Longer description."`
	Priority    string `short:"p" enum:"low,medium,high" default:"medium" help:"Priority (low|medium|high)."`
	Due         string `help:"Due date (YYYY-MM-DD)."`
	Category    string `short:"c" default:"Personal" help:"Category (Personal, Work, Study, Health, Shopping, Other)."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Data.CreateTask(ctx.Ctx, models.NewTask{
		UserID:      ctx.UserID(),
		Title:       c.Title,
		Description: c.Description,
		Priority:    models.Priority(c.Priority),
		DueDate:     c.Due,
		Category:    c.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	ctx.Printf("✓ Added task %q (ID: %s)\n", task.Title, cli.ShortID(task.ID))
	return nil
}

type TaskListCmd struct {
	Status   string `short:"s" enum:"all,pending,completed" default:"all" help:"Filter by status (all|pending|completed)."`
	Category string `short:"c" help:"Filter by category."`
	Search   string `short:"q" help:"Search titles and descriptions."`
	ShowIDs  bool   `help:"Show full task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks := ctx.Data.GetTasks(ctx.Ctx, ctx.UserID(), models.TaskFilter{
		Status:   models.TaskStatus(c.Status),
		Category: c.Category,
		Query:    c.Search,
	})
	if len(tasks) == 0 {
		ctx.Println("No tasks found")
		return nil
	}

	done := 0
	ctx.Println("Tasks:")
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
			done++
		}
		id := cli.ShortID(t.ID)
		if c.ShowIDs {
			id = t.ID
		}
		ctx.Printf("  [%s] %s  %s (%s, %s)", mark, id, t.Title, t.Category, t.Priority)
		if t.DueDate != "" {
			ctx.Printf(" due %s", t.DueDate)
		}
		ctx.Println()
		if t.Description != "" {
			ctx.Printf("        %s\n", cli.Truncate(t.Description, 70))
		}
	}
	ctx.Printf("\n%d of %d done\n", done, len(tasks))
	return nil
}

func findTask(ctx *cli.Context, ref string) (models.Task, error) {
	return cli.MatchID(ctx.Data.GetTasks(ctx.Ctx, ctx.UserID()), func(t models.Task) string { return t.ID }, ref)
}

type TaskEditCmd struct {
	ID          string  `arg:"" help:"Task ID or prefix."`
	Title       *string `help:"New title."`
	Description *string `short:"d" help:"New description."`
	Priority    *string `short:"p" help:"New priority (low|medium|high)."`
	Due         *string `help:"New due date (YYYY-MM-DD), empty to clear."`
	Category    *string `short:"c" help:"New category."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := findTask(ctx, c.ID)
	if err != nil {
		return err
	}

	changed := false
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
			changed = true
		}
	}
	set(&task.Title, c.Title)
	set(&task.Description, c.Description)
	set(&task.DueDate, c.Due)
	set(&task.Category, c.Category)
	if c.Priority != nil {
		task.Priority = models.Priority(*c.Priority)
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change, pass at least one of --title, --description, --priority, --due or --category")
	}

	updated, err := ctx.Data.UpdateTask(ctx.Ctx, task)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	ctx.Printf("✓ Updated task %q\n", updated.Title)
	return nil
}

type TaskToggleCmd struct {
	ID string `arg:"" help:"Task ID or prefix."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	task, err := findTask(ctx, c.ID)
	if err != nil {
		return err
	}
	updated, err := ctx.Data.ToggleTask(ctx.Ctx, task)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if updated.Completed {
		ctx.Printf("✓ Completed %q\n", updated.Title)
	} else {
		ctx.Printf("Reopened %q\n", updated.Title)
	}
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID or prefix."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	task, err := findTask(ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ok, err := ctx.Data.DeleteTask(ctx.Ctx, task.ID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !ok {
		return fmt.Errorf("task %s was not deleted", cli.ShortID(task.ID))
	}
	ctx.Printf("Deleted task %q\n", task.Title)
	return nil
}
