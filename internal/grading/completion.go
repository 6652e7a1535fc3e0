package grading

import (
	"bytes"
	"encoding/json"

	"github.com/mind-engage/lessonhub/internal/assessment"
	"github.com/mind-engage/lessonhub/internal/course"
)

// lessonRef is the part an assessment and a grade have in common.
type lessonRef struct {
	ModuleID string `json:"moduleId"`
	LessonID string `json:"lessonId"`
}

// Aggregate derives one completion status per module, in module order. Both maps
// are keyed by module id and their slices must be ordered by lesson id.
func Aggregate(modules []course.Module, assessments map[string][]assessment.Assessment, grades map[string][]Grade) []ModuleCompletionStatus {
	out := make([]ModuleCompletionStatus, 0, len(modules))
	for _, m := range modules {
		done := moduleCompleted(assessments[m.ID], grades[m.ID])
		out = append(out, ModuleCompletionStatus{ModuleID: m.ID, ModuleName: m.Name, Completed: &done})
	}
	return out
}

func moduleCompleted(as []assessment.Assessment, gs []Grade) bool {
	if len(as) != len(gs) {
		return false
	}
	if len(as) == 0 || len(gs) == 0 {
		return false
	}
	for _, g := range gs {
		if !g.Approved {
			return false
		}
	}
	for i := range as {
		if !bytes.Equal(
			mustJSON(lessonRef{ModuleID: as[i].ModuleID, LessonID: as[i].LessonID}),
			mustJSON(lessonRef{ModuleID: gs[i].ModuleID, LessonID: gs[i].LessonID}),
		) {
			return false
		}
	}
	return true
}

func mustJSON(r lessonRef) []byte {
	b, err := json.Marshal(r)
	if err != nil {
		panic(err) // two string fields always encode
	}
	return b
}
