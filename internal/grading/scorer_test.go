package grading

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/lessonhub/internal/apperr"
	"github.com/mind-engage/lessonhub/internal/assessment"
)

func key(pairs ...string) []assessment.Question {
	out := make([]assessment.Question, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, assessment.Question{Question: pairs[i], Answer: pairs[i+1]})
	}
	return out
}

func answers(pairs ...string) []SubmittedAnswer {
	out := make([]SubmittedAnswer, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, SubmittedAnswer{Question: pairs[i], Answer: pairs[i+1]})
	}
	return out
}

func TestScoreMCQ_AllCorrect(t *testing.T) {
	v, err := ScoreMCQ(answers("2+2?", "4"), key("2+2?", "4"))
	require.NoError(t, err)
	assert.Equal(t, Verdict{
		Approved: true,
		Answers:  []SubmittedAnswer{{Question: "2+2?", Answer: "4", Incorrect: false}},
		Correct:  1,
		Total:    1,
	}, v)
}

func TestScoreMCQ_OneWrong(t *testing.T) {
	v, err := ScoreMCQ(
		answers("2+2?", "4", "Capital of France?", "London"),
		key("2+2?", "4", "Capital of France?", "Paris"),
	)
	require.NoError(t, err)
	assert.False(t, v.Approved)
	assert.False(t, v.Answers[0].Incorrect)
	assert.True(t, v.Answers[1].Incorrect)
	assert.Equal(t, 1, v.Correct)
}

func TestScoreMCQ_MatchesByQuestionNotPosition(t *testing.T) {
	v, err := ScoreMCQ(
		answers("Capital of France?", "Paris", "2+2?", "4"),
		key("2+2?", "4", "Capital of France?", "Paris"),
	)
	require.NoError(t, err)
	assert.True(t, v.Approved)
	assert.False(t, v.Answers[0].Incorrect)
	assert.False(t, v.Answers[1].Incorrect)
}

func TestScoreMCQ_MissingQuestionCountsWrong(t *testing.T) {
	v, err := ScoreMCQ(answers("2+2?", "4"), key("2+2?", "4", "3+3?", "6"))
	require.NoError(t, err)
	assert.False(t, v.Approved)
	assert.Len(t, v.Answers, 1, "no synthetic annotation for the unmatched key question")
	assert.False(t, v.Answers[0].Incorrect)
}

func TestScoreMCQ_ExactTextMatch(t *testing.T) {
	for name, q := range map[string]string{
		"case differs":   "capital of France?",
		"trailing space": "Capital of France? ",
	} {
		t.Run(name, func(t *testing.T) {
			v, err := ScoreMCQ(answers(q, "Paris"), key("Capital of France?", "Paris"))
			require.NoError(t, err)
			assert.False(t, v.Approved)
			assert.True(t, v.Answers[0].Incorrect)
		})
	}
}

func TestScoreMCQ_DuplicateAndExtraItemsMarkedIncorrect(t *testing.T) {
	v, err := ScoreMCQ(
		answers("2+2?", "4", "2+2?", "4", "bonus?", "x"),
		key("2+2?", "4"),
	)
	require.NoError(t, err)
	assert.True(t, v.Approved)
	assert.False(t, v.Answers[0].Incorrect)
	assert.True(t, v.Answers[1].Incorrect)
	assert.True(t, v.Answers[2].Incorrect)
}

func TestScoreMCQ_EmptyKey(t *testing.T) {
	v, err := ScoreMCQ(answers("2+2?", "4"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyAnswerKey))
	assert.True(t, errors.Is(err, apperr.ErrDegenerateInput))
	assert.False(t, v.Approved)
	assert.Equal(t, 0, v.Total)
}

func TestScoreMCQ_PureAndIdempotent(t *testing.T) {
	in := answers("2+2?", "5", "3+3?", "6")
	in[0].Incorrect = false
	in[1].Incorrect = true
	k := key("2+2?", "4", "3+3?", "6")

	first, err := ScoreMCQ(in, k)
	require.NoError(t, err)
	second, err := ScoreMCQ(in, k)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.False(t, in[0].Incorrect, "input not mutated")
	assert.True(t, in[1].Incorrect, "input not mutated")
	assert.True(t, first.Answers[0].Incorrect)
	assert.False(t, first.Answers[1].Incorrect)
}

func TestScoreMCQ_IdenticalSetsApprove(t *testing.T) {
	cases := [][]string{
		{"a", "1"},
		{"a", "1", "b", "2", "c", "3"},
		{"Q with spaces ", "option d", "другой", "b"},
	}
	for _, c := range cases {
		v, err := ScoreMCQ(answers(c...), key(c...))
		require.NoError(t, err)
		assert.True(t, v.Approved, "%v", c)
		assert.Equal(t, len(c)/2, v.Correct)
	}
}
