package quiz

import "github.com/julianstephens/calmind/internal/models"

type Option struct {
	Text  string
	Style models.LearningStyle
}

type Question struct {
	Prompt  string
	Options []Option
}

func q(prompt, visual, auditory, kinesthetic string) Question {
	return Question{
		Prompt: prompt,
		Options: []Option{
			{Text: visual, Style: models.StyleVisual},
			{Text: auditory, Style: models.StyleAuditory},
			{Text: kinesthetic, Style: models.StyleKinesthetic},
		},
	}
}

var Questions = []Question{
	q("When learning something new, I prefer to:",
		"Read detailed instructions and diagrams",
		"Listen to explanations and discussions",
		"Try it hands-on and learn by doing"),
	q("When I need to remember information, I:",
		"Create visual aids like charts or mind maps",
		"Repeat it out loud or discuss it with others",
		"Write it down or practice it physically"),
	q("In a classroom setting, I learn best when:",
		"The teacher uses slides, diagrams, and visual presentations",
		"The teacher explains concepts verbally and encourages discussion",
		"There are hands-on activities and group work"),
	q("When solving problems, I tend to:",
		"Visualize the problem and draw diagrams",
		"Talk through the problem step by step",
		"Work through examples and practice similar problems"),
	q("My ideal study environment includes:",
		"Good lighting, organized materials, and visual references",
		"Background music or the ability to read aloud",
		"Comfortable seating and the freedom to move around"),
	q("When taking notes, I prefer to:",
		"Use colors, highlights, and organize information visually",
		"Record lectures or summarize in my own words",
		"Write by hand and use bullet points or lists"),
	q("I remember information best when:",
		"I can see it written down or in a diagram",
		"I hear it explained or discuss it with others",
		"I can connect it to real-world examples or experiences"),
	q("When studying for exams, I:",
		"Create flashcards, charts, and visual summaries",
		"Read notes aloud or form study groups",
		"Practice with mock tests and hands-on exercises"),
	q("I understand concepts better when:",
		"I can see examples and visual representations",
		"Someone explains them to me verbally",
		"I can apply them in practical situations"),
	q("My attention is best maintained when:",
		"Information is presented with visual variety",
		"There's verbal interaction and discussion",
		"I can be actively involved and engaged"),
}

// Profile describes a learning style for the results screen.
type Profile struct {
	Title       string
	Description string
	Strengths   []string
	StudyTips   []string
}

var Profiles = map[models.LearningStyle]Profile{
	models.StyleVisual: {
		Title:       "Visual Learner",
		Description: "You learn best through seeing and visualizing information. You prefer charts, diagrams, and written instructions.",
		Strengths: []string{
			"Excellent at remembering visual details",
			"Good at organizing information spatially",
			"Strong ability to follow written instructions",
		},
		StudyTips: []string{
			"Use mind maps and flowcharts",
			"Highlight and color-code notes",
			"Create visual summaries and infographics",
			"Use flashcards with images",
		},
	},
	models.StyleAuditory: {
		Title:       "Auditory Learner",
		Description: "You learn best through listening and verbal communication. You prefer discussions, lectures, and audio materials.",
		Strengths: []string{
			"Excellent listening skills",
			"Good at remembering spoken information",
			"Effective in group discussions",
		},
		StudyTips: []string{
			"Read notes and textbooks aloud",
			"Join study groups and discussions",
			"Use audio recordings and podcasts",
			"Explain concepts to others",
		},
	},
	models.StyleKinesthetic: {
		Title:       "Kinesthetic Learner",
		Description: "You learn best through hands-on experience and physical activity. You prefer practical applications and movement.",
		Strengths: []string{
			"Excellent at hands-on learning",
			"Good at remembering through practice",
			"Effective at learning through experience",
		},
		StudyTips: []string{
			"Take frequent breaks and move around",
			"Use hands-on activities and experiments",
			"Practice with real-world applications",
			"Write notes by hand",
		},
	},
}
