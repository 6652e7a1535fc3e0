package course

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/lessonhub/internal/apperr"
	"github.com/mind-engage/lessonhub/internal/db/dbtest"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	s := NewSQLStore(dbtest.Open(t))
	clock := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func TestSQLStore_CourseTree(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c, err := s.CreateCourse(ctx, "Go 101")
	require.NoError(t, err)
	m1, err := s.AddModule(ctx, c.ID, "Basics")
	require.NoError(t, err)
	m2, err := s.AddModule(ctx, c.ID, "Concurrency")
	require.NoError(t, err)
	l1, err := s.AddLesson(ctx, m1.ID, Lesson{Title: "Variables", Content: "var x int"})
	require.NoError(t, err)
	_, err = s.AddLesson(ctx, m2.ID, Lesson{Title: "Goroutines"})
	require.NoError(t, err)

	got, err := s.GetCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go 101", got.Name)
	require.Len(t, got.Modules, 2)
	assert.Equal(t, "Basics", got.Modules[0].Name)
	require.Len(t, got.Modules[0].Lessons, 1)
	assert.Equal(t, l1.ID, got.Modules[0].Lessons[0].ID)
	assert.Equal(t, "Goroutines", got.Modules[1].Lessons[0].Title)

	list, err := s.ListCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Course{{ID: c.ID, Name: "Go 101"}}, list)
}

func TestSQLStore_RenameAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c, err := s.CreateCourse(ctx, "Old")
	require.NoError(t, err)
	m, err := s.AddModule(ctx, c.ID, "M")
	require.NoError(t, err)

	renamed, err := s.RenameCourse(ctx, c.ID, "New")
	require.NoError(t, err)
	assert.Equal(t, "New", renamed.Name)

	rm, err := s.RenameModule(ctx, m.ID, "M2")
	require.NoError(t, err)
	assert.Equal(t, Module{ID: m.ID, CourseID: c.ID, Name: "M2"}, rm)

	require.NoError(t, s.DeleteModule(ctx, m.ID))
	mods, err := s.ListModules(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, mods)

	require.NoError(t, s.DeleteCourse(ctx, c.ID))
	_, err = s.GetCourse(ctx, c.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	assert.True(t, errors.Is(s.DeleteCourse(ctx, c.ID), apperr.ErrNotFound))
	_, err = s.RenameModule(ctx, "missing", "x")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSQLStore_UpdateLessonOnlyNonEmptyFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c, _ := s.CreateCourse(ctx, "C")
	m, _ := s.AddModule(ctx, c.ID, "M")
	l, err := s.AddLesson(ctx, m.ID, Lesson{Title: "T", Overview: "O", Content: "C"})
	require.NoError(t, err)

	got, err := s.UpdateLesson(ctx, l.ID, LessonPatch{Title: "T2", KeyTerms: "k"})
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, "O", got.Overview)
	assert.Equal(t, "k", got.KeyTerms)
	assert.Equal(t, "C", got.Content)

	lessons, err := s.ListLessons(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, got, lessons[0])
}

func TestSQLStore_DeleteLessonReturnsModule(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c, _ := s.CreateCourse(ctx, "C")
	m, _ := s.AddModule(ctx, c.ID, "M")
	l, _ := s.AddLesson(ctx, m.ID, Lesson{Title: "T"})

	moduleID, err := s.DeleteLesson(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, moduleID)

	_, err = s.DeleteLesson(ctx, l.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSQLStore_MissingParents(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.ListModules(ctx, "nope")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = s.AddModule(ctx, "nope", "M")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = s.ListLessons(ctx, "nope")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = s.AddLesson(ctx, "nope", Lesson{Title: "T"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
