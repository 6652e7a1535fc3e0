package grading

import "strings"

// Patch is what a submission writes to the grade record. The set of variants is closed.
type Patch interface {
	isPatch()
}

// Unchanged means nothing is persisted; the learner retries.
type Unchanged struct{}

// AutoApproved persists {approved: true} with no theory answer.
type AutoApproved struct{}

// PendingReview persists the theory answer with approved=false until a reviewer approves it.
type PendingReview struct {
	TheoryAnswer string
}

func (Unchanged) isPatch()     {}
func (AutoApproved) isPatch()  {}
func (PendingReview) isPatch() {}

// Decide maps a verdict and an optional theory answer to a Patch.
func Decide(v Verdict, theoryAnswer string) Patch {
	switch {
	case !v.Approved:
		return Unchanged{}
	case strings.TrimSpace(theoryAnswer) == "":
		return AutoApproved{}
	default:
		return PendingReview{TheoryAnswer: theoryAnswer}
	}
}
