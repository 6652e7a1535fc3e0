package course

import "context"

type Store interface {
	ListCourses(ctx context.Context) ([]Course, error) // id + name only
	GetCourse(ctx context.Context, id string) (Course, error)
	CreateCourse(ctx context.Context, name string) (Course, error)
	RenameCourse(ctx context.Context, id, name string) (Course, error)
	DeleteCourse(ctx context.Context, id string) error

	ListModules(ctx context.Context, courseID string) ([]Module, error) // without lessons
	AddModule(ctx context.Context, courseID, name string) (Module, error)
	RenameModule(ctx context.Context, moduleID, name string) (Module, error)
	DeleteModule(ctx context.Context, moduleID string) error

	ListLessons(ctx context.Context, moduleID string) ([]Lesson, error)
	AddLesson(ctx context.Context, moduleID string, l Lesson) (Lesson, error)
	UpdateLesson(ctx context.Context, lessonID string, p LessonPatch) (Lesson, error)
	// DeleteLesson returns the id of the module the lesson belonged to.
	DeleteLesson(ctx context.Context, lessonID string) (string, error)
}
