package library

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/resources"
)

type ResourcesCmd struct {
	List       ResourcesListCmd       `cmd:"" help:"Browse study resources." default:"1"`
	Show       ResourcesShowCmd       `cmd:"" help:"Show one resource."`
	Categories ResourcesCategoriesCmd `cmd:"" help:"List resource categories."`
}

type ResourcesListCmd struct {
	Type      string `short:"t" help:"Filter by type (document|video|article|tool|course|podcast)."`
	Category  string `short:"c" help:"Filter by category."`
	Style     string `short:"s" help:"Filter by learning style (visual|auditory|kinesthetic)."`
	Query     string `short:"q" help:"Search titles, descriptions, and tags."`
	Recommend bool   `short:"r" help:"Recommend resources from your quiz result."`
	Limit     int    `short:"n" default:"0" help:"Maximum resources to show (0 for all)."`
	Tips      bool   `help:"Include study tips."`
	Markdown  bool   `help:"Print markdown instead of rendering it."`
	Theme     string `help:"Rendering theme (dark|light|notty); picked from the terminal when empty."`
}

var kinds = []resources.Kind{
	resources.KindDocument, resources.KindVideo, resources.KindArticle,
	resources.KindTool, resources.KindCourse, resources.KindPodcast,
}

func (c *ResourcesListCmd) filter() (resources.Filter, error) {
	f := resources.Filter{Category: c.Category, Query: c.Query}
	if c.Type != "" {
		k := resources.Kind(strings.ToLower(c.Type))
		found := false
		for _, known := range kinds {
			if k == known {
				found = true
				break
			}
		}
		if !found {
			return f, fmt.Errorf("%w: unknown resource type %q", models.ErrInvalid, c.Type)
		}
		f.Kind = k
	}
	if c.Style != "" {
		s := models.LearningStyle(strings.ToLower(c.Style))
		if !s.Valid() {
			return f, fmt.Errorf("%w: unknown learning style %q", models.ErrInvalid, c.Style)
		}
		f.Style = s
	}
	return f, nil
}

func (c *ResourcesListCmd) Run(ctx *cli.Context) error {
	f, err := c.filter()
	if err != nil {
		return err
	}

	list := resources.Catalog
	title := "Study resources"
	if c.Recommend {
		result, ok := ctx.Data.GetQuizResult(ctx.Ctx, ctx.UserID())
		if !ok {
			return errors.New("no quiz result yet; take it with: calmind quiz take")
		}
		list = resources.Recommend(list, result, 0)
		title = fmt.Sprintf("Recommended for %s learners", result.Primary)
	}
	list = resources.Find(list, f)
	if c.Limit > 0 && len(list) > c.Limit {
		list = list[:c.Limit]
	}

	var tips []resources.Tip
	if c.Tips {
		tips = resources.Tips
	}

	if !c.Markdown && !ctx.Interactive {
		printPlain(ctx, list, tips)
		return nil
	}
	return show(ctx, resources.Markdown(title, list, tips), c.Markdown, c.Theme)
}

func printPlain(ctx *cli.Context, list []resources.Resource, tips []resources.Tip) {
	if len(list) == 0 {
		ctx.Println("No resources match.")
	}
	for _, r := range list {
		ctx.Printf("%-3s %-8s %s %s\n", r.ID, r.Kind, strings.Repeat("★", r.Rating), r.Title)
		ctx.Printf("    %s · %s · %s\n", r.Category, r.Difficulty, r.URL)
	}
	if len(tips) > 0 {
		ctx.Println("\nStudy tips:")
		for _, t := range tips {
			ctx.Printf("  - %s: %s\n", t.Title, t.Description)
		}
	}
}

// show prints md raw or rendered for the terminal.
func show(ctx *cli.Context, md string, raw bool, theme string) error {
	if raw {
		ctx.Printf("%s", md)
		return nil
	}
	out, err := resources.Render(md, theme, 100)
	if err != nil {
		return err
	}
	ctx.Printf("%s", out)
	return nil
}

type ResourcesShowCmd struct {
	ID       string `arg:"" help:"Resource id."`
	Markdown bool   `help:"Print markdown instead of rendering it."`
}

func (c *ResourcesShowCmd) Run(ctx *cli.Context) error {
	r, err := cli.MatchID(resources.Catalog, func(r resources.Resource) string { return r.ID }, c.ID)
	if err != nil {
		return err
	}
	md := resources.Markdown(r.Title, []resources.Resource{r}, nil)
	if !c.Markdown && !ctx.Interactive {
		printPlain(ctx, []resources.Resource{r}, nil)
		ctx.Printf("\n%s\n", r.Description)
		if len(r.Tags) > 0 {
			ctx.Printf("Tags: %s\n", strings.Join(r.Tags, ", "))
		}
		return nil
	}
	return show(ctx, md, c.Markdown, "")
}

type ResourcesCategoriesCmd struct{}

func (c *ResourcesCategoriesCmd) Run(ctx *cli.Context) error {
	for _, cat := range resources.Categories(resources.Catalog) {
		n := len(resources.Find(resources.Catalog, resources.Filter{Category: cat}))
		ctx.Printf("  %-24s %d\n", cat, n)
	}
	return nil
}
