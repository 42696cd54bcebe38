package models

import "strings"

type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleKinesthetic LearningStyle = "kinesthetic"
)

// LearningStyles in tie-break order.
var LearningStyles = []LearningStyle{StyleVisual, StyleAuditory, StyleKinesthetic}

func (s LearningStyle) Valid() bool {
	switch s {
	case StyleVisual, StyleAuditory, StyleKinesthetic:
		return true
	}
	return false
}

// QuizResult is the most recent learning-style assessment for a user.
type QuizResult struct {
	UserID      string        `json:"user_id"`
	Visual      int           `json:"visual"`
	Auditory    int           `json:"auditory"`
	Kinesthetic int           `json:"kinesthetic"`
	Primary     LearningStyle `json:"primary"`
	Secondary   LearningStyle `json:"secondary"`
	CompletedAt string        `json:"completed_at"`
}

// Percent returns the score for a single dimension.
func (r QuizResult) Percent(s LearningStyle) int {
	switch s {
	case StyleVisual:
		return r.Visual
	case StyleAuditory:
		return r.Auditory
	case StyleKinesthetic:
		return r.Kinesthetic
	}
	return 0
}

func (r QuizResult) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return invalidf("quiz result user_id cannot be empty")
	}
	for _, s := range LearningStyles {
		if p := r.Percent(s); p < 0 || p > 100 {
			return invalidf("%s percentage %d out of range", s, p)
		}
	}
	if !r.Primary.Valid() {
		return invalidf("unknown primary style %q", r.Primary)
	}
	if r.Secondary != "" && !r.Secondary.Valid() {
		return invalidf("unknown secondary style %q", r.Secondary)
	}
	return nil
}
