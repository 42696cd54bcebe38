package resources

import "github.com/julianstephens/calmind/internal/models"

type Kind string

const (
	KindDocument Kind = "document"
	KindVideo    Kind = "video"
	KindArticle  Kind = "article"
	KindTool     Kind = "tool"
	KindCourse   Kind = "course"
	KindPodcast  Kind = "podcast"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

type Resource struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Kind        Kind                   `json:"type"`
	Category    string                 `json:"category"`
	URL         string                 `json:"url"`
	Duration    string                 `json:"duration,omitempty"`
	Rating      int                    `json:"rating"`
	Difficulty  Difficulty             `json:"difficulty"`
	Tags        []string               `json:"tags"`
	Author      string                 `json:"author,omitempty"`
	Styles      []models.LearningStyle `json:"learning_styles"`
}

// Suits reports whether the resource is tagged for the learning style.
func (r Resource) Suits(style models.LearningStyle) bool {
	for _, s := range r.Styles {
		if s == style {
			return true
		}
	}
	return false
}

type Tip struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
}

var (
	visual      = models.StyleVisual
	auditory    = models.StyleAuditory
	kinesthetic = models.StyleKinesthetic
)

var Catalog = []Resource{
	{
		ID:          "1",
		Title:       "Complete Study Guide Collection",
		Description: "Note-taking templates, exam preparation guides, study schedules, flashcard templates and subject-specific study strategies.",
		Kind:        KindDocument,
		Category:    "Study Materials",
		URL:         "https://www.khanacademy.org/college-careers-more/study-skills",
		Rating:      5,
		Difficulty:  Intermediate,
		Tags:        []string{"study-guide", "comprehensive", "multi-subject"},
		Author:      "Calmind Team",
		Styles:      []models.LearningStyle{visual, kinesthetic},
	},
	{
		ID:          "2",
		Title:       "How to Study Effectively - Evidence-Based Methods",
		Description: "Scientifically proven study techniques including active recall, spaced repetition and the Feynman technique.",
		Kind:        KindVideo,
		Category:    "Study Techniques",
		URL:         "https://www.youtube.com/watch?v=ukLnPbIffxE",
		Duration:    "12 min",
		Rating:      5,
		Difficulty:  Beginner,
		Tags:        []string{"study-methods", "science-based", "productivity"},
		Author:      "Thomas Frank",
		Styles:      []models.LearningStyle{visual, auditory},
	},
	{
		ID:          "3",
		Title:       "Memory Palace Technique - Complete Guide",
		Description: "Memorize anything using the spatial memory techniques of memory champions.",
		Kind:        KindVideo,
		Category:    "Memory Techniques",
		URL:         "https://www.youtube.com/watch?v=3vlpQHJ09do",
		Duration:    "15 min",
		Rating:      5,
		Difficulty:  Advanced,
		Tags:        []string{"memory-palace", "mnemonics", "advanced-techniques"},
		Author:      "Memory Expert",
		Styles:      []models.LearningStyle{visual, kinesthetic},
	},
	{
		ID:          "4",
		Title:       "Focus Music - Deep Concentration Playlist",
		Description: "Instrumental music curated to support focus during study sessions.",
		Kind:        KindPodcast,
		Category:    "Focus Music",
		URL:         "https://www.youtube.com/watch?v=5qap5aO4i9A",
		Duration:    "3 hours",
		Rating:      4,
		Difficulty:  Beginner,
		Tags:        []string{"focus-music", "concentration", "binaural-beats"},
		Author:      "Study Music Project",
		Styles:      []models.LearningStyle{auditory},
	},
	{
		ID:          "5",
		Title:       "Pomodoro Technique Explained",
		Description: "Break work into focused 25-minute intervals with planned breaks.",
		Kind:        KindVideo,
		Category:    "Time Management",
		URL:         "https://www.youtube.com/watch?v=VFW3Ld7JO0w",
		Duration:    "8 min",
		Rating:      4,
		Difficulty:  Beginner,
		Tags:        []string{"pomodoro", "time-management", "productivity"},
		Author:      "Productivity Expert",
		Styles:      []models.LearningStyle{visual, kinesthetic},
	},
	{
		ID:          "6",
		Title:       "Speed Reading Mastery Course",
		Description: "Raise reading speed while keeping comprehension.",
		Kind:        KindVideo,
		Category:    "Reading Skills",
		URL:         "https://www.youtube.com/watch?v=ZwEquW_Yij0",
		Duration:    "45 min",
		Rating:      4,
		Difficulty:  Intermediate,
		Tags:        []string{"speed-reading", "comprehension", "reading-skills"},
		Author:      "Reading Pro",
		Styles:      []models.LearningStyle{visual},
	},
	{
		ID:          "7",
		Title:       "Calm Piano Music for Studying",
		Description: "Peaceful piano melodies for a low-stress study environment.",
		Kind:        KindPodcast,
		Category:    "Calm Music",
		URL:         "https://www.youtube.com/watch?v=lFcSrYw-ARY",
		Duration:    "2 hours",
		Rating:      5,
		Difficulty:  Beginner,
		Tags:        []string{"calm-music", "piano", "relaxation"},
		Author:      "Peaceful Piano",
		Styles:      []models.LearningStyle{auditory},
	},
	{
		ID:          "8",
		Title:       "Note-Taking Strategies That Actually Work",
		Description: "The Cornell method, mind mapping and digital note-taking.",
		Kind:        KindVideo,
		Category:    "Note Taking",
		URL:         "https://www.youtube.com/watch?v=WtW9IyE04OQ",
		Duration:    "18 min",
		Rating:      4,
		Difficulty:  Beginner,
		Tags:        []string{"note-taking", "cornell-method", "mind-mapping"},
		Author:      "Study Skills Expert",
		Styles:      []models.LearningStyle{visual, kinesthetic},
	},
	{
		ID:          "9",
		Title:       "Nature Sounds for Deep Focus",
		Description: "Rain, forest and ocean soundscapes for studying.",
		Kind:        KindPodcast,
		Category:    "Focus Music",
		URL:         "https://www.youtube.com/watch?v=n61ULEU7CO0",
		Duration:    "10 hours",
		Rating:      5,
		Difficulty:  Beginner,
		Tags:        []string{"nature-sounds", "ambient", "focus"},
		Author:      "Nature Sounds HD",
		Styles:      []models.LearningStyle{auditory},
	},
	{
		ID:          "10",
		Title:       "How to Learn Anything Fast",
		Description: "Meta-learning techniques drawn from cognitive science.",
		Kind:        KindVideo,
		Category:    "Learning Techniques",
		URL:         "https://www.youtube.com/watch?v=O96fE1E-rf8",
		Duration:    "22 min",
		Rating:      5,
		Difficulty:  Intermediate,
		Tags:        []string{"meta-learning", "fast-learning", "cognitive-science"},
		Author:      "Learning Expert",
		Styles:      []models.LearningStyle{visual, auditory},
	},
}

var Tips = []Tip{
	{ID: "1", Title: "Use the 2-Minute Rule", Category: "Productivity", Difficulty: Beginner,
		Description: "If a task takes less than 2 minutes, do it immediately instead of adding it to your list."},
	{ID: "2", Title: "Study in Different Locations", Category: "Environment", Difficulty: Beginner,
		Description: "Changing your study environment can improve retention and prevent boredom."},
	{ID: "3", Title: "Teach Someone Else", Category: "Learning", Difficulty: Intermediate,
		Description: "Explain the concept to someone, or out loud to yourself, to find what you have not understood."},
	{ID: "4", Title: "Use the Feynman Technique", Category: "Understanding", Difficulty: Intermediate,
		Description: "Restate a complex idea in simple terms to reveal gaps in your understanding."},
	{ID: "5", Title: "Implement Active Recall", Category: "Memory", Difficulty: Intermediate,
		Description: "Test yourself with flashcards, practice problems or summaries from memory instead of re-reading."},
	{ID: "6", Title: "Practice Spaced Repetition", Category: "Memory", Difficulty: Advanced,
		Description: "Review at increasing intervals (1 day, 3 days, 1 week, 2 weeks, 1 month)."},
}
