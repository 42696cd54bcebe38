// Package resources holds the study resource library and renders it for the
// terminal.
package resources

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/calmind/internal/models"
)

type Filter struct {
	Kind     Kind
	Category string
	Style    models.LearningStyle
	Query    string
}

func (f Filter) Matches(r Resource) bool {
	if f.Kind != "" && r.Kind != f.Kind {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, "all") && !strings.EqualFold(f.Category, r.Category) {
		return false
	}
	if f.Style != "" && !r.Suits(f.Style) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := strings.ToLower(r.Title + " " + r.Description + " " + strings.Join(r.Tags, " "))
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

func Find(list []Resource, f Filter) []Resource {
	var out []Resource
	for _, r := range list {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Recommend returns the resources for a quiz result: those suiting the
// primary style first, then those suiting only the secondary, each group
// ordered by rating with catalog order breaking ties.
func Recommend(list []Resource, result models.QuizResult, limit int) []Resource {
	rank := func(r Resource) int {
		switch {
		case r.Suits(result.Primary):
			return 0
		case result.Secondary != "" && r.Suits(result.Secondary):
			return 1
		default:
			return 2
		}
	}

	var picked []Resource
	for _, r := range list {
		if rank(r) < 2 {
			picked = append(picked, r)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		ri, rj := rank(picked[i]), rank(picked[j])
		if ri != rj {
			return ri < rj
		}
		return picked[i].Rating > picked[j].Rating
	})
	if limit > 0 && len(picked) > limit {
		picked = picked[:limit]
	}
	return picked
}

func Categories(list []Resource) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range list {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Markdown renders resources and tips as a markdown document.
func Markdown(title string, list []Resource, tips []Tip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(list) == 0 {
		b.WriteString("_No resources match._\n\n")
	}
	for _, r := range list {
		fmt.Fprintf(&b, "## [%s](%s)\n\n", r.Title, r.URL)
		meta := []string{string(r.Kind), r.Category, string(r.Difficulty), strings.Repeat("★", r.Rating)}
		if r.Duration != "" {
			meta = append(meta, r.Duration)
		}
		fmt.Fprintf(&b, "*%s*\n\n%s\n\n", strings.Join(meta, " · "), r.Description)
		if r.Author != "" {
			fmt.Fprintf(&b, "By %s. ", r.Author)
		}
		if len(r.Styles) > 0 {
			styles := make([]string, len(r.Styles))
			for i, s := range r.Styles {
				styles[i] = string(s)
			}
			fmt.Fprintf(&b, "Suits: %s.", strings.Join(styles, ", "))
		}
		b.WriteString("\n\n")
	}
	if len(tips) > 0 {
		b.WriteString("## Study tips\n\n")
		for _, t := range tips {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", t.Title, t.Category, t.Description)
		}
	}
	return b.String()
}

// Render formats markdown for the terminal. An empty style picks one from
// the terminal background.
func Render(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
