package grading

import (
	"github.com/pkg/errors"

	"github.com/mind-engage/lessonhub/internal/apperr"
	"github.com/mind-engage/lessonhub/internal/assessment"
)

// ErrEmptyAnswerKey is returned when an assessment has no MCQ items to grade against.
var ErrEmptyAnswerKey = errors.Wrap(apperr.ErrDegenerateInput, "empty answer key")

// ScoreMCQ grades submitted against key. Key questions are matched to the first
// submitted item with identical question text; a key question with no match counts
// as wrong. Submitted items that no key question matched are marked incorrect.
// Only full marks approve. submitted is not modified.
func ScoreMCQ(submitted []SubmittedAnswer, key []assessment.Question) (Verdict, error) {
	answers := make([]SubmittedAnswer, len(submitted))
	copy(answers, submitted)
	for i := range answers {
		answers[i].Incorrect = true
	}

	v := Verdict{Answers: answers, Total: len(key)}
	if len(key) == 0 {
		return v, ErrEmptyAnswerKey
	}

	// an item matched by several key entries stays incorrect if any of them disagrees
	wrong := make([]bool, len(answers))
	for _, k := range key {
		i := firstMatch(submitted, k.Question)
		if i < 0 {
			continue
		}
		if submitted[i].Answer != k.Answer {
			wrong[i] = true
			answers[i].Incorrect = true
			continue
		}
		v.Correct++
		if !wrong[i] {
			answers[i].Incorrect = false
		}
	}
	v.Approved = v.Correct == v.Total
	return v, nil
}

func firstMatch(submitted []SubmittedAnswer, question string) int {
	for i, s := range submitted {
		if s.Question == question {
			return i
		}
	}
	return -1
}
