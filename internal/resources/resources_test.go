package resources

import (
	"strings"
	"testing"

	"github.com/julianstephens/calmind/internal/models"
)

func ids(list []Resource) string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return strings.Join(out, ",")
}

func TestFind(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{name: "all", filter: Filter{}, want: "1,2,3,4,5,6,7,8,9,10"},
		{name: "podcasts", filter: Filter{Kind: KindPodcast}, want: "4,7,9"},
		{name: "category case-insensitive", filter: Filter{Category: "focus music"}, want: "4,9"},
		{name: "category all", filter: Filter{Category: "All"}, want: "1,2,3,4,5,6,7,8,9,10"},
		{name: "style", filter: Filter{Style: models.StyleAuditory}, want: "2,4,7,9,10"},
		{name: "query matches tags", filter: Filter{Query: "Pomodoro"}, want: "5"},
		{name: "combined", filter: Filter{Kind: KindVideo, Style: models.StyleKinesthetic}, want: "3,5,8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Find(Catalog, tt.filter)); got != tt.want {
				t.Errorf("Find() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	result := models.QuizResult{Primary: models.StyleAuditory, Secondary: models.StyleKinesthetic}

	got := Recommend(Catalog, result, 0)
	// auditory by rating (7,9,10,2 are 5 stars, 4 is 4), then kinesthetic-only
	if want := "2,7,9,10,4,1,3,5,8"; ids(got) != want {
		t.Errorf("Recommend() = %s, want %s", ids(got), want)
	}
	if got := Recommend(Catalog, result, 3); ids(got) != "2,7,9" {
		t.Errorf("Recommend(limit 3) = %s", ids(got))
	}
	if got := Recommend(Catalog, models.QuizResult{Primary: models.StyleVisual}, 0); len(got) != 7 {
		t.Errorf("visual-only recommendations = %s", ids(got))
	}
}

func TestCategories(t *testing.T) {
	cats := Categories(Catalog)
	if len(cats) != 9 || cats[0] != "Calm Music" {
		t.Errorf("Categories() = %v", cats)
	}
}

func TestMarkdownAndRender(t *testing.T) {
	md := Markdown("Library", Catalog[:1], Tips[:1])
	for _, want := range []string{"# Library", "Complete Study Guide Collection", "Suits: visual, kinesthetic", "2-Minute Rule"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if empty := Markdown("Library", nil, nil); !strings.Contains(empty, "No resources match") {
		t.Errorf("empty markdown = %q", empty)
	}

	out, err := Render(md, "notty", 80)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "Complete Study Guide Collection") {
		t.Errorf("rendered output missing title:\n%s", out)
	}
}
