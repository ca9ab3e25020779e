// Package exercise runs one practice session: it owns the current question
// and the drawing board, grades submissions, builds hints and records the
// attempt history.
package exercise

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/linedrill/internal/coach"
	"github.com/abhisek/linedrill/internal/drawing"
	"github.com/abhisek/linedrill/internal/feedback"
	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
	"github.com/abhisek/linedrill/internal/questions"
	"github.com/abhisek/linedrill/internal/store"
)

// CorrectMessage is shown for a correct submission.
const CorrectMessage = "Answer correct."

// Options configures a Session.
type Options struct {
	// Rng drives question generation and hint selection. Nil seeds one from
	// the clock.
	Rng *rand.Rand

	// Types restricts the question types served. Empty means all.
	Types []questions.TypeID

	// Repo records attempts and hints when set.
	Repo store.EventRepo

	Logger *slog.Logger
}

// Outcome is the graded result of one submission.
type Outcome struct {
	Drawing geometry.DrawingData
	Result  grading.Result
	Hints   []string
}

// Message is the headline shown to the student.
func (o *Outcome) Message() string {
	if o.Result.IsCorrect {
		return CorrectMessage
	}
	return "Not quite. Think about these:"
}

// Session is a single practice run. It is not safe for concurrent use.
type Session struct {
	id       string
	rng      *rand.Rand
	types    []questions.TypeID
	repo     store.EventRepo
	logger   *slog.Logger
	feedback *feedback.Builder

	board    *drawing.Board
	question questions.Question
	last     *Outcome

	started time.Time
	tally   tally
}

// New starts a session and generates its first question.
func New(opts Options) (*Session, error) {
	rng := opts.Rng
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = questions.SeededRand(seed)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	types := make([]questions.TypeID, 0, len(opts.Types))
	for _, t := range opts.Types {
		id, err := questions.ParseType(string(t))
		if err != nil {
			return nil, err
		}
		types = append(types, id)
	}

	id := uuid.NewString()
	s := &Session{
		id:       id,
		rng:      rng,
		types:    types,
		repo:     opts.Repo,
		logger:   logger.With("session", id),
		feedback: feedback.NewBuilder(rng),
		board:    drawing.NewBoard(),
		started:  time.Now(),
		tally:    newTally(),
	}
	if err := s.Next(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) ID() string                   { return s.id }
func (s *Session) Question() questions.Question { return s.question }
func (s *Session) Board() *drawing.Board        { return s.board }

// Last returns the outcome of the latest submission for the current
// question, or nil.
func (s *Session) Last() *Outcome { return s.last }

// Next replaces the question and clears the board.
func (s *Session) Next() error {
	q, err := s.generate()
	if err != nil {
		return fmt.Errorf("next question: %w", err)
	}
	s.question = q
	s.board.Reset()
	s.last = nil
	s.logger.Debug("new question", "type", q.Type(), "id", q.ID())
	return nil
}

func (s *Session) generate() (questions.Question, error) {
	if len(s.types) == 0 {
		return questions.CreateRandom(s.rng)
	}
	return questions.Create(s.types[s.rng.IntN(len(s.types))], s.rng)
}

// Submit grades the board against the current question. Recording failures
// are logged and never fail the submission.
func (s *Session) Submit(ctx context.Context) *Outcome {
	data := s.board.Snapshot()
	result := s.question.Grade(data)
	out := &Outcome{
		Drawing: data,
		Result:  result,
		Hints:   s.feedback.Build(result, s.question.Type()),
	}
	s.last = out
	s.tally.add(s.question.Type(), result.IsCorrect)

	s.logger.Debug("submit",
		"type", s.question.Type(),
		"lines", len(data.Lines),
		"correct", result.IsCorrect,
		"mistakes", result.Codes(),
	)
	s.record(ctx, out)
	return out
}

func (s *Session) record(ctx context.Context, out *Outcome) {
	if s.repo == nil {
		return
	}

	codes := make([]string, 0, len(out.Result.Mistakes))
	for _, c := range out.Result.Codes() {
		codes = append(codes, string(c))
	}
	err := s.repo.AppendAttempt(ctx, store.AttemptEventData{
		SessionID:    s.id,
		QuestionID:   s.question.ID(),
		QuestionType: string(s.question.Type()),
		Prompt:       s.question.Prompt(),
		Lines:        out.Drawing.Lines,
		Correct:      out.Result.IsCorrect,
		MistakeCodes: codes,
	})
	if err != nil {
		s.logger.Warn("failed to record attempt", "error", err)
	}

	for _, h := range out.Hints {
		s.recordHint(ctx, store.HintSourcePool, h)
	}
}

func (s *Session) recordHint(ctx context.Context, source, text string) {
	if s.repo == nil {
		return
	}
	err := s.repo.AppendHint(ctx, store.HintEventData{
		SessionID:    s.id,
		QuestionID:   s.question.ID(),
		QuestionType: string(s.question.Type()),
		Source:       source,
		HintText:     text,
	})
	if err != nil {
		s.logger.Warn("failed to record hint", "source", source, "error", err)
	}
}

// CoachRequest describes the latest incorrect submission for the coach, or
// returns nil when there is nothing to coach.
func (s *Session) CoachRequest() *coach.HintRequest {
	if s.last == nil || s.last.Result.IsCorrect {
		return nil
	}
	return &coach.HintRequest{
		QuestionType: s.question.Type(),
		Prompt:       s.question.Prompt(),
		Lines:        s.last.Drawing.Lines,
		Mistakes:     s.last.Result.Mistakes,
		PoolHints:    s.last.Hints,
	}
}

// RecordCoachHint records a coach question shown for the current question.
func (s *Session) RecordCoachHint(ctx context.Context, question string) {
	s.recordHint(ctx, store.HintSourceCoach, question)
}
