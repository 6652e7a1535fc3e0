package grading

import "time"

// SubmittedAnswer is one learner MCQ item. Incorrect is computed by ScoreMCQ and ignored on input.
type SubmittedAnswer struct {
	Question  string `json:"question" validate:"notblank"`
	Answer    string `json:"answer"`
	Incorrect bool   `json:"incorrect"`
}

type Verdict struct {
	Approved bool              `json:"approved"`
	Answers  []SubmittedAnswer `json:"incomingMCQs"`
	Correct  int               `json:"correct"`
	Total    int               `json:"total"`
}

// GradeKey identifies the single live grade of a learner for a lesson.
type GradeKey struct {
	UserID   string `json:"userId" validate:"notblank"`
	ModuleID string `json:"moduleId" validate:"notblank"`
	LessonID string `json:"lessonId" validate:"notblank"`
}

type Grade struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ModuleID     string    `json:"moduleId"`
	LessonID     string    `json:"lessonId"`
	Approved     bool      `json:"approved"`
	TheoryAnswer *string   `json:"theoryAnswer,omitempty"`
	Remarks      *string   `json:"remarks,omitempty"`
	Date         time.Time `json:"date"`

	// TheoryQuestion is filled only in the pending-review listing.
	TheoryQuestion string `json:"assessment,omitempty"`
}

func (g Grade) Key() GradeKey {
	return GradeKey{UserID: g.UserID, ModuleID: g.ModuleID, LessonID: g.LessonID}
}

// Approval is the reviewer action on a pending grade.
type Approval struct {
	Remarks string
}

type GradeFilter struct {
	Approved *bool
}

type ModuleCompletionStatus struct {
	ModuleID   string `json:"id"`
	ModuleName string `json:"moduleName"`
	Completed  *bool  `json:"completed,omitempty"`
}

type CompletionQuery struct {
	IsCompleted bool
	// UserID scopes grades to one learner; empty counts every learner's grades.
	UserID string
}

type Submission struct {
	UserID       string            `json:"userId" validate:"notblank"`
	ModuleID     string            `json:"moduleId" validate:"notblank"`
	LessonID     string            `json:"lessonId" validate:"notblank"`
	MCQ          []SubmittedAnswer `json:"mcq" validate:"dive"`
	TheoryAnswer string            `json:"theory"`
}

func (s Submission) Key() GradeKey {
	return GradeKey{UserID: s.UserID, ModuleID: s.ModuleID, LessonID: s.LessonID}
}

// Result is what the learner sees after submitting.
type Result struct {
	Approved bool              `json:"approved"`
	Answers  []SubmittedAnswer `json:"incomingMCQs"`
}
