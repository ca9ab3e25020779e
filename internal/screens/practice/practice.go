// Package practice is the drawing screen: it shows the current question and
// the board, takes cursor and coordinate input, and shows grading feedback.
package practice

import (
	"context"
	"log/slog"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/linedrill/internal/coach"
	"github.com/abhisek/linedrill/internal/exercise"
	"github.com/abhisek/linedrill/internal/questions"
	"github.com/abhisek/linedrill/internal/router"
	"github.com/abhisek/linedrill/internal/screen"
	"github.com/abhisek/linedrill/internal/screens/summary"
	"github.com/abhisek/linedrill/internal/store"
	"github.com/abhisek/linedrill/internal/ui/components"
	"github.com/abhisek/linedrill/internal/ui/layout"
)

// Config holds the screen's dependencies. Repo and Coach are optional.
type Config struct {
	Types  []questions.TypeID
	Rng    *rand.Rand
	Repo   store.EventRepo
	Coach  *coach.Coach
	Logger *slog.Logger
}

// coachState tracks the AI hint for the current submission.
type coachState int

const (
	coachIdle coachState = iota
	coachWaiting
	coachDone
	coachFailed
)

// PracticeScreen implements screen.Screen for a practice session.
type PracticeScreen struct {
	cfg     Config
	session *exercise.Session
	logger  *slog.Logger

	input    components.CoordInput
	entering bool

	// outcome is the feedback on display. It clears when the board changes.
	outcome *exercise.Outcome

	coach     coachState
	coachHint string

	// submits counts submissions; a coach reply is kept only for the latest.
	submits int

	errMsg string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)

// New starts a practice session. A session error is shown on screen.
func New(cfg Config) *PracticeScreen {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &PracticeScreen{
		cfg:    cfg,
		logger: logger,
		input:  components.NewCoordInput(),
	}

	sess, err := exercise.New(exercise.Options{
		Rng:    cfg.Rng,
		Types:  cfg.Types,
		Repo:   cfg.Repo,
		Logger: logger,
	})
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.session = sess
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeScreen) Title() string {
	if s.session == nil {
		return "Practice"
	}
	return questions.DisplayName(s.session.Question().Type())
}

// Status shows the running score.
func (s *PracticeScreen) Status() string {
	if s.session == nil {
		return ""
	}
	sum := s.session.Summary()
	return scoreLabel(sum.Correct, sum.Attempts)
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.entering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Place"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "Spc", Description: "Place"},
		{Key: ":", Description: "Type"},
		{Key: "u/r", Description: "Undo/Redo"},
		{Key: "x", Description: "Clear"},
		{Key: "s", Description: "Submit"},
		{Key: "n", Description: "New"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coachHintMsg:
		return s.handleCoachHint(msg)

	case tea.KeyPressMsg:
		if s.session == nil {
			if msg.String() == "esc" {
				return s, router.Pop()
			}
			return s, nil
		}
		if s.entering {
			return s.handleInputKey(msg)
		}
		return s.handleKey(msg)
	}

	if s.entering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	board := s.session.Board()

	switch msg.String() {
	case "up", "k":
		board.MoveCursor(0, 1)
	case "down", "j":
		board.MoveCursor(0, -1)
	case "left", "h":
		board.MoveCursor(-1, 0)
	case "right", "l":
		board.MoveCursor(1, 0)

	case "enter", "space":
		board.Place()
		s.boardChanged()
	case ":":
		s.entering = true
		s.input.Reset()
		return s, s.input.Init()
	case "u":
		if board.Undo() {
			s.boardChanged()
		}
	case "r":
		if board.Redo() {
			s.boardChanged()
		}
	case "x":
		if board.CanReset() {
			board.Reset()
			s.boardChanged()
		}

	case "s":
		return s, s.submit()
	case "n":
		return s, s.next()

	case "esc":
		if board.CancelPending() {
			return s, nil
		}
		return s, s.leave()
	}
	return s, nil
}

func (s *PracticeScreen) handleInputKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.entering = false
		return s, nil
	case "enter":
		x, y, err := s.input.Point()
		if err != nil {
			s.input.SetError(err)
			return s, nil
		}
		s.session.Board().PlaceAt(x, y)
		s.boardChanged()
		s.entering = false
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// boardChanged drops feedback that no longer matches the board.
func (s *PracticeScreen) boardChanged() {
	s.outcome = nil
	s.coach = coachIdle
	s.coachHint = ""
}

func (s *PracticeScreen) submit() tea.Cmd {
	s.submits++
	s.outcome = s.session.Submit(context.Background())
	s.coach = coachIdle
	s.coachHint = ""

	req := s.session.CoachRequest()
	if req == nil || s.cfg.Coach == nil {
		return nil
	}
	s.coach = coachWaiting
	return requestHint(s.cfg.Coach, req, s.submits)
}

func (s *PracticeScreen) next() tea.Cmd {
	if err := s.session.Next(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.boardChanged()
	return nil
}

// leave pops the screen, showing the session summary first when anything
// was submitted.
func (s *PracticeScreen) leave() tea.Cmd {
	sum := s.session.Summary()
	if sum.Attempts == 0 {
		return router.Pop()
	}
	return router.Replace(summary.New(sum))
}

func (s *PracticeScreen) handleCoachHint(msg coachHintMsg) (screen.Screen, tea.Cmd) {
	// Replies for an earlier submission are dropped, even on the same question.
	if s.session == nil || s.coach != coachWaiting || msg.Submit != s.submits {
		return s, nil
	}
	if msg.Err != nil {
		s.logger.Warn("coach hint failed", "error", msg.Err)
		s.coach = coachFailed
		return s, nil
	}
	s.coach = coachDone
	s.coachHint = msg.Question
	s.session.RecordCoachHint(context.Background(), msg.Question)
	return s, nil
}

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	return s.renderBoardView(width, height)
}
