package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/quiz"
	"github.com/julianstephens/calmind/internal/resources"
)

type QuizCmd struct {
	Take QuizTakeCmd `cmd:"" help:"Answer the learning-style questionnaire."`
	Show QuizShowCmd `cmd:"" help:"Show your latest result." default:"1"`
}

type QuizTakeCmd struct {
	Answers []string `short:"a" sep:"," help:"Answers in question order: v|a|k or visual|auditory|kinesthetic."`
}

func (c *QuizTakeCmd) Run(ctx *cli.Context) error {
	var answers []models.LearningStyle
	switch {
	case len(c.Answers) > 0:
		parsed, err := parseAnswers(c.Answers)
		if err != nil {
			return err
		}
		answers = parsed
	case ctx.Interactive:
		asked, err := ask()
		if err != nil {
			return err
		}
		answers = asked
	default:
		return errors.New("no terminal; pass answers with --answers")
	}
	if len(answers) != len(quiz.Questions) {
		return fmt.Errorf("%w: got %d answers for %d questions", models.ErrInvalid, len(answers), len(quiz.Questions))
	}

	result, err := quiz.Score(ctx.UserID(), answers)
	if err != nil {
		return err
	}
	saved, err := ctx.Data.SaveQuizResult(ctx.Ctx, result)
	if err != nil {
		return fmt.Errorf("failed to save quiz result: %w", err)
	}
	printResult(ctx, saved)
	return nil
}

func parseAnswers(raw []string) ([]models.LearningStyle, error) {
	out := make([]models.LearningStyle, 0, len(raw))
	for i, a := range raw {
		a = strings.ToLower(strings.TrimSpace(a))
		var style models.LearningStyle
		for _, s := range models.LearningStyles {
			if a == string(s) || a == string(s)[:1] {
				style = s
				break
			}
		}
		if style == "" {
			return nil, fmt.Errorf("%w: answer %d %q is not v, a, or k", models.ErrInvalid, i+1, a)
		}
		out = append(out, style)
	}
	return out, nil
}

func ask() ([]models.LearningStyle, error) {
	answers := make([]models.LearningStyle, len(quiz.Questions))
	groups := make([]*huh.Group, len(quiz.Questions))
	for i, q := range quiz.Questions {
		opts := make([]huh.Option[models.LearningStyle], len(q.Options))
		for j, o := range q.Options {
			opts[j] = huh.NewOption(o.Text, o.Style)
		}
		groups[i] = huh.NewGroup(
			huh.NewSelect[models.LearningStyle]().
				Title(fmt.Sprintf("%d/%d  %s", i+1, len(quiz.Questions), q.Prompt)).
				Options(opts...).
				Value(&answers[i]),
		)
	}
	if err := huh.NewForm(groups...).Run(); err != nil {
		return nil, err
	}
	return answers, nil
}

type QuizShowCmd struct {
	Recommend int `short:"r" default:"3" help:"Resources to recommend."`
}

func (c *QuizShowCmd) Run(ctx *cli.Context) error {
	result, ok := ctx.Data.GetQuizResult(ctx.Ctx, ctx.UserID())
	if !ok {
		ctx.Println("No quiz result yet. Take it with: calmind quiz take")
		return nil
	}
	printResult(ctx, result)

	if c.Recommend > 0 {
		recs := resources.Recommend(resources.Catalog, result, c.Recommend)
		if len(recs) > 0 {
			ctx.Println("\nRecommended:")
			for _, r := range recs {
				ctx.Printf("  %s  %s (%s, %s)\n", r.ID, r.Title, r.Kind, r.Category)
			}
		}
	}
	return nil
}

func printResult(ctx *cli.Context, r models.QuizResult) {
	profile := quiz.Profiles[r.Primary]
	ctx.Printf("%s\n%s\n\n", profile.Title, profile.Description)
	for _, s := range models.LearningStyles {
		p := r.Percent(s)
		ctx.Printf("  %-12s %3d%% %s\n", s, p, strings.Repeat("█", p/5))
	}
	if r.Secondary != "" {
		ctx.Printf("\nSecondary style: %s\n", r.Secondary)
	}
	ctx.Println("\nStudy tips:")
	for _, tip := range profile.StudyTips {
		ctx.Printf("  - %s\n", tip)
	}
	if r.CompletedAt != "" {
		ctx.Printf("\nTaken %s\n", cli.FormatWhen(r.CompletedAt, ctx.Now()))
	}
}
