package exercise

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/linedrill/internal/feedback"
	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
	"github.com/abhisek/linedrill/internal/questions"
	"github.com/abhisek/linedrill/internal/store"
)

var dbCounter atomic.Int64

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:exercise_test_%d?mode=memory&cache=shared", dbCounter.Add(1)))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func newSession(t *testing.T, seed uint64, repo store.EventRepo, types ...questions.TypeID) *Session {
	t.Helper()
	s, err := New(Options{Rng: questions.SeededRand(seed), Types: types, Repo: repo})
	require.NoError(t, err)
	return s
}

// drawEquation places y = m·x + b through (0, b) and a neighbor at x = ±1
// that stays on the grid.
func drawEquation(s *Session, m, b int) {
	dx := 1
	if !geometry.DefaultDomain.Contains(geometry.Point{X: 1, Y: b + m}) {
		dx = -1
	}
	s.Board().SetCursor(geometry.Point{X: 0, Y: b})
	s.Board().Place()
	s.Board().SetCursor(geometry.Point{X: dx, Y: b + m*dx})
	s.Board().Place()
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(Options{Types: []questions.TypeID{"circle"}})
	assert.ErrorIs(t, err, questions.ErrUnknownType)
}

func TestNew_NormalizesTypes(t *testing.T) {
	s := newSession(t, 1, nil, " Equation-Line ")
	assert.Equal(t, questions.TypeEquationLine, s.Question().Type())
}

func TestSession_TypeFilter(t *testing.T) {
	s := newSession(t, 7, nil, questions.TypeSlopePointLine, questions.TypeParallelFree)
	for range 30 {
		typ := s.Question().Type()
		assert.Contains(t, []questions.TypeID{questions.TypeSlopePointLine, questions.TypeParallelFree}, typ)
		require.NoError(t, s.Next())
	}
}

func TestSession_SubmitCorrect(t *testing.T) {
	s := newSession(t, 3, nil, questions.TypeEquationLine)
	ans := s.Question().Answer().(questions.EquationAnswer)
	drawEquation(s, ans.M, ans.B)

	out := s.Submit(context.Background())
	assert.True(t, out.Result.IsCorrect)
	assert.Empty(t, out.Hints)
	assert.Equal(t, CorrectMessage, out.Message())
	assert.Same(t, out, s.Last())
	assert.Nil(t, s.CoachRequest())
}

func TestSession_SubmitEmptyBoard(t *testing.T) {
	s := newSession(t, 3, nil, questions.TypeTwoPointsLine)

	out := s.Submit(context.Background())
	assert.False(t, out.Result.IsCorrect)
	assert.True(t, out.Result.Has(grading.NoLineDrawn))
	assert.NotEmpty(t, out.Hints)
	assert.LessOrEqual(t, len(out.Hints), feedback.MaxHints)
	assert.NotEqual(t, CorrectMessage, out.Message())

	req := s.CoachRequest()
	require.NotNil(t, req)
	assert.Equal(t, questions.TypeTwoPointsLine, req.QuestionType)
	assert.Equal(t, s.Question().Prompt(), req.Prompt)
	assert.Equal(t, out.Hints, req.PoolHints)
}

func TestSession_ParallelFreeNeedsTwoLines(t *testing.T) {
	s := newSession(t, 11, nil, questions.TypeParallelFree)
	ans := s.Question().Answer().(questions.ParallelFreeAnswer)
	drawEquation(s, ans.M, ans.B)

	out := s.Submit(context.Background())
	assert.Equal(t, []grading.MistakeCode{grading.NeedTwoLines}, out.Result.Codes())
}

func TestSession_NextResetsBoard(t *testing.T) {
	s := newSession(t, 5, nil)
	drawEquation(s, 1, 1)
	s.Submit(context.Background())
	first := s.Question().ID()

	require.NoError(t, s.Next())
	assert.NotEqual(t, first, s.Question().ID())
	assert.Zero(t, s.Board().LineCount())
	assert.False(t, s.Board().CanRedo())
	assert.Nil(t, s.Last())
}

func TestSession_SameSeedSameQuestions(t *testing.T) {
	a := newSession(t, 42, nil)
	b := newSession(t, 42, nil)
	for range 5 {
		assert.Equal(t, a.Question().ID(), b.Question().ID())
		assert.Equal(t, a.Question().Prompt(), b.Question().Prompt())
		require.NoError(t, a.Next())
		require.NoError(t, b.Next())
	}
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSession_Summary(t *testing.T) {
	s := newSession(t, 9, nil, questions.TypeEquationLine)

	s.Submit(context.Background()) // empty board
	ans := s.Question().Answer().(questions.EquationAnswer)
	drawEquation(s, ans.M, ans.B)
	s.Submit(context.Background())

	sum := s.Summary()
	assert.Equal(t, 2, sum.Attempts)
	assert.Equal(t, 1, sum.Correct)
	assert.InDelta(t, 0.5, sum.Accuracy, 1e-9)
	assert.Equal(t, []TypeResult{{Type: questions.TypeEquationLine, Attempts: 2, Correct: 1}}, sum.ByType)
	assert.Zero(t, Summary{}.Accuracy)
}

func TestSession_RecordsEvents(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	s := newSession(t, 13, repo, questions.TypeEquationLine)

	wrong := s.Submit(ctx)
	s.RecordCoachHint(ctx, "Where does your line cross the y-axis?")

	attempts, err := repo.QueryAttempts(ctx, store.QueryOpts{SessionID: s.ID()})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	a := attempts[0]
	assert.Equal(t, s.Question().ID(), a.QuestionID)
	assert.Equal(t, "equation-line", a.QuestionType)
	assert.Equal(t, s.Question().Prompt(), a.Prompt)
	assert.False(t, a.Correct)
	assert.Equal(t, []string{"NO_LINE_DRAWN"}, a.MistakeCodes)

	hints, err := repo.QueryHints(ctx, store.QueryOpts{SessionID: s.ID()})
	require.NoError(t, err)
	require.Len(t, hints, len(wrong.Hints)+1)
	assert.Equal(t, store.HintSourceCoach, hints[0].Source)
	for i, h := range hints[1:] {
		assert.Equal(t, store.HintSourcePool, h.Source)
		// Newest first, so pool hints come back reversed.
		assert.Equal(t, wrong.Hints[len(wrong.Hints)-1-i], h.HintText)
	}
}

type failingRepo struct {
	store.EventRepo
}

func (failingRepo) AppendAttempt(context.Context, store.AttemptEventData) error {
	return errors.New("disk full")
}

func (failingRepo) AppendHint(context.Context, store.HintEventData) error {
	return errors.New("disk full")
}

func TestSession_RecordingFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s, err := New(Options{
		Rng:    questions.SeededRand(1),
		Types:  []questions.TypeID{questions.TypeEquationLine},
		Repo:   failingRepo{},
		Logger: logger,
	})
	require.NoError(t, err)

	out := s.Submit(context.Background())
	assert.False(t, out.Result.IsCorrect)
	assert.Contains(t, buf.String(), "failed to record attempt")
	assert.Contains(t, buf.String(), "failed to record hint")
	assert.Contains(t, buf.String(), "disk full")
}
