package assessment

import "context"

type Store interface {
	ListAssessments(ctx context.Context) ([]Assessment, error)
	// FindAssessmentByLesson returns apperr.ErrNotFound when the lesson has no assessment.
	FindAssessmentByLesson(ctx context.Context, lessonID string) (*Assessment, error)
	// FindAssessmentsByModule is ordered by lesson id.
	FindAssessmentsByModule(ctx context.Context, moduleID string) ([]Assessment, error)
	// UpsertAssessment creates or replaces the assessment of a.LessonID.
	UpsertAssessment(ctx context.Context, a Assessment) (Assessment, error)
	DeleteAssessment(ctx context.Context, lessonID string) error
}
