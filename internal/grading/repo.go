package grading

import (
	"context"

	"github.com/mind-engage/lessonhub/internal/assessment"
	"github.com/mind-engage/lessonhub/internal/course"
)

// AnswerKeys is the read side of the assessment store.
type AnswerKeys interface {
	FindAssessmentByLesson(ctx context.Context, lessonID string) (*assessment.Assessment, error)
	FindAssessmentsByModule(ctx context.Context, moduleID string) ([]assessment.Assessment, error)
}

type Modules interface {
	ListModules(ctx context.Context, courseID string) ([]course.Module, error)
}

type Store interface {
	// FindGradesByModule is ordered by lesson id. An empty userID returns every learner's grades.
	FindGradesByModule(ctx context.Context, moduleID, userID string) ([]Grade, error)
	// UpsertGrade overwrites the whole record at key.
	UpsertGrade(ctx context.Context, key GradeKey, p Patch) (Grade, error)
	UpdateGrade(ctx context.Context, key GradeKey, a Approval) (Grade, error)

	ListGrades(ctx context.Context, f GradeFilter) ([]Grade, error)
	// FindGradeByLesson returns the earliest grade for the lesson, restricted to userID when set.
	FindGradeByLesson(ctx context.Context, lessonID, userID string) (Grade, error)
	FindGradesByUser(ctx context.Context, userID string) ([]Grade, error)
}

// Events receives audit records of grade mutations.
type Events interface {
	Record(ctx context.Context, typ, key string, v any) error
}
