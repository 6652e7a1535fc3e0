package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/lessonhub/internal/apperr"
	"github.com/mind-engage/lessonhub/internal/db/dbtest"
)

func sample(moduleID, lessonID string) Assessment {
	return Assessment{
		ModuleID: moduleID,
		LessonID: lessonID,
		MCQ: []Question{
			{Question: "2+2?", Options: Options{A: "3", B: "4"}, Answer: "b"},
		},
		Theory: "Explain addition.",
	}
}

func TestSQLStore_UpsertReplacesByLesson(t *testing.T) {
	ctx := context.Background()
	s := NewSQLStore(dbtest.Open(t))

	first, err := s.UpsertAssessment(ctx, sample("m1", "l1"))
	require.NoError(t, err)
	require.Len(t, first.MCQ, 1)
	assert.NotEmpty(t, first.MCQ[0].ID)
	assert.Equal(t, "b", first.MCQ[0].Answer)

	next := sample("m1", "l1")
	next.MCQ = append(next.MCQ, Question{Question: "3+3?", Answer: "a"})
	next.Theory = ""
	second, err := s.UpsertAssessment(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, second.MCQ, 2)
	assert.Empty(t, second.Theory)

	all, err := s.ListAssessments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLStore_FindByModuleOrderedByLesson(t *testing.T) {
	ctx := context.Background()
	s := NewSQLStore(dbtest.Open(t))

	for _, l := range []string{"l3", "l1", "l2"} {
		_, err := s.UpsertAssessment(ctx, sample("m1", l))
		require.NoError(t, err)
	}
	_, err := s.UpsertAssessment(ctx, sample("m2", "l9"))
	require.NoError(t, err)

	got, err := s.FindAssessmentsByModule(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"l1", "l2", "l3"}, []string{got[0].LessonID, got[1].LessonID, got[2].LessonID})

	none, err := s.FindAssessmentsByModule(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLStore_FindAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	s := NewSQLStore(dbtest.Open(t))

	_, err := s.FindAssessmentByLesson(ctx, "nope")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = s.UpsertAssessment(ctx, sample("m1", "l1"))
	require.NoError(t, err)
	require.NoError(t, s.DeleteAssessment(ctx, "l1"))
	assert.True(t, errors.Is(s.DeleteAssessment(ctx, "l1"), apperr.ErrNotFound))
}

func TestWithoutAnswers(t *testing.T) {
	a := sample("m1", "l1")
	stripped := a.WithoutAnswers()
	assert.Empty(t, stripped.MCQ[0].Answer)
	assert.Equal(t, "b", a.MCQ[0].Answer, "original left intact")
}
