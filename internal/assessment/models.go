package assessment

import "time"

type Options struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
	D string `json:"d"`
}

// Question is one multiple-choice item; Answer names the correct option ("a".."d").
type Question struct {
	ID       string  `json:"id,omitempty"`
	Question string  `json:"question" validate:"notblank"`
	Options  Options `json:"options"`
	Answer   string  `json:"answer,omitempty" validate:"notblank"`
}

type Assessment struct {
	ID        string     `json:"id"`
	ModuleID  string     `json:"moduleId" validate:"notblank"`
	LessonID  string     `json:"lessonId" validate:"notblank"`
	MCQ       []Question `json:"mcq" validate:"dive"`
	Theory    string     `json:"theory,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// WithoutAnswers returns a copy that is safe to show to learners.
func (a Assessment) WithoutAnswers() Assessment {
	out := a
	out.MCQ = make([]Question, len(a.MCQ))
	for i, q := range a.MCQ {
		q.Answer = ""
		out.MCQ[i] = q
	}
	return out
}
