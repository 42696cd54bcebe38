// Package quiz scores the learning-style questionnaire.
package quiz

import (
	"errors"
	"fmt"
	"sort"

	"github.com/julianstephens/calmind/internal/models"
)

var ErrNoAnswers = errors.New("no answers to score")

// Score tallies answers and returns rounded percentages with the primary
// and secondary styles. Ties keep the visual, auditory, kinesthetic order.
func Score(userID string, answers []models.LearningStyle) (models.QuizResult, error) {
	if len(answers) == 0 {
		return models.QuizResult{}, ErrNoAnswers
	}

	counts := map[models.LearningStyle]int{}
	for i, a := range answers {
		if !a.Valid() {
			return models.QuizResult{}, fmt.Errorf("answer %d: unknown learning style %q", i+1, a)
		}
		counts[a]++
	}

	total := len(answers)
	percent := func(n int) int {
		// round half up
		return (200*n + total) / (2 * total)
	}

	result := models.QuizResult{
		UserID:      userID,
		Visual:      percent(counts[models.StyleVisual]),
		Auditory:    percent(counts[models.StyleAuditory]),
		Kinesthetic: percent(counts[models.StyleKinesthetic]),
	}

	ranked := append([]models.LearningStyle(nil), models.LearningStyles...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return result.Percent(ranked[i]) > result.Percent(ranked[j])
	})
	result.Primary = ranked[0]
	result.Secondary = ranked[1]
	return result, nil
}
