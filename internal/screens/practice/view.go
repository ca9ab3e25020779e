package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/linedrill/internal/drawing"
	"github.com/abhisek/linedrill/internal/questions"
	"github.com/abhisek/linedrill/internal/ui/components"
	"github.com/abhisek/linedrill/internal/ui/layout"
	"github.com/abhisek/linedrill/internal/ui/theme"
)

const panelWidth = 34

func scoreLabel(correct, attempts int) string {
	return fmt.Sprintf("✓ %d/%d", correct, attempts)
}

func renderError(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\nError: " + msg)
}

// renderBoardView lays out the prompt above the board with a side panel, or
// the panel below the board on narrow terminals.
func (s *PracticeScreen) renderBoardView(width, _ int) string {
	q := s.session.Question()
	board := s.session.Board()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt()))
	b.WriteString("\n\n")

	grid := s.grid(board)
	panel := s.renderPanel(board)

	var body string
	if layout.IsCompactWidth(width) {
		body = lipgloss.JoinVertical(lipgloss.Left, grid.View(), "", panel)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, grid.View(), "   ", panel)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))

	if s.entering {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(width, s.input.View()))
	}
	return b.String()
}

func (s *PracticeScreen) grid(board *drawing.Board) components.Grid {
	g := components.Grid{
		Domain:     board.Domain(),
		Lines:      board.Visible(),
		Cursor:     board.Cursor(),
		ShowCursor: !s.entering,
	}
	if p, ok := board.Pending(); ok {
		g.Pending = &p
	}
	return g
}

func (s *PracticeScreen) renderPanel(board *drawing.Board) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder

	b.WriteString(dim.Render("Cursor  ") + theme.Body.Render(questions.FormatPoint(board.Cursor())))
	b.WriteString("\n")
	if p, ok := board.Pending(); ok {
		b.WriteString(dim.Render("First   ") + theme.PendingPoint.Render(questions.FormatPoint(p)))
	} else {
		b.WriteString(dim.Render("First   -"))
	}
	b.WriteString("\n")

	lines := board.LineCount()
	label := fmt.Sprintf("Lines   %d", lines)
	if lines > drawing.MaxVisibleLines {
		label += fmt.Sprintf(" (last %d shown)", drawing.MaxVisibleLines)
	}
	b.WriteString(dim.Render(label))
	b.WriteString("\n")

	for i, l := range board.Visible() {
		style := theme.LineColors[i%len(theme.LineColors)]
		b.WriteString(style.Render(fmt.Sprintf("  %s → %s",
			questions.FormatPoint(l.P1), questions.FormatPoint(l.P2))))
		b.WriteString("\n")
	}

	if fb := s.renderFeedback(); fb != "" {
		b.WriteString("\n")
		b.WriteString(fb)
	}

	return theme.Card.Width(panelWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (s *PracticeScreen) renderFeedback() string {
	if s.outcome == nil {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(panelWidth - 4)

	var b strings.Builder
	if s.outcome.Result.IsCorrect {
		b.WriteString(theme.Correct.Render(s.outcome.Message()))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press n for a new question."))
		return b.String()
	}

	b.WriteString(theme.Incorrect.Render(s.outcome.Message()))
	b.WriteString("\n")
	for _, h := range s.outcome.Hints {
		b.WriteString(wrap.Foreground(theme.Text).Render("• " + h))
		b.WriteString("\n")
	}

	switch s.coach {
	case coachWaiting:
		b.WriteString(theme.Hint.Render("Asking the coach..."))
	case coachDone:
		b.WriteString("\n")
		b.WriteString(wrap.Foreground(theme.Accent).Render("Coach: " + s.coachHint))
	}
	return strings.TrimRight(b.String(), "\n")
}
