package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linedrill/internal/exercise"
	"github.com/abhisek/linedrill/internal/questions"
	"github.com/abhisek/linedrill/internal/router"
	"github.com/abhisek/linedrill/internal/screen"
	"github.com/abhisek/linedrill/internal/ui/components"
	"github.com/abhisek/linedrill/internal/ui/layout"
	"github.com/abhisek/linedrill/internal/ui/theme"
)

// SummaryScreen shows the scoreboard of a finished practice session.
type SummaryScreen struct {
	summary exercise.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary exercise.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Session complete"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Submissions: %d        Correct: %d        Accuracy: %.0f%%",
			sum.Attempts, sum.Correct, sum.Accuracy*100)))
	b.WriteString("\n\n")

	if len(sum.ByType) == 0 {
		return b.String()
	}

	barWidth := min(width-8, 60)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render("By question type")))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, divider))
	b.WriteString("\n\n")

	for _, r := range sum.ByType {
		pct := 0.0
		if r.Attempts > 0 {
			pct = float64(r.Correct) / float64(r.Attempts)
		}
		label := fmt.Sprintf("%-30s %2d/%-2d", questions.DisplayName(r.Type), r.Correct, r.Attempts)
		bar := components.NewProgressBar(label, pct, true, barWidth)
		b.WriteString(layout.Centered(width, bar.View()))
		b.WriteString("\n")
	}
	return b.String()
}
