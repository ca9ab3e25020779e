package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linedrill/internal/questions"
	"github.com/abhisek/linedrill/internal/router"
	"github.com/abhisek/linedrill/internal/screen"
	"github.com/abhisek/linedrill/internal/store"
	"github.com/abhisek/linedrill/internal/ui/components"
	"github.com/abhisek/linedrill/internal/ui/layout"
	"github.com/abhisek/linedrill/internal/ui/theme"
)

// recentLimit is how many attempts the screen lists.
const recentLimit = 30

type historyLoadedMsg struct {
	Stats    []store.TypeStats
	Attempts []store.AttemptEvent
	Hints    map[string][]store.HintEvent // questionID → hints, oldest first
	Err      error
}

// HistoryScreen displays per-type accuracy and recent attempts.
type HistoryScreen struct {
	eventRepo store.EventRepo
	stats     []store.TypeStats
	attempts  []store.AttemptEvent
	hints     map[string][]store.HintEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		return load(context.Background(), repo)
	}
}

func load(ctx context.Context, repo store.EventRepo) historyLoadedMsg {
	stats, err := repo.TypeStats(ctx)
	if err != nil {
		return historyLoadedMsg{Err: err}
	}
	attempts, err := repo.QueryAttempts(ctx, store.QueryOpts{Limit: recentLimit})
	if err != nil {
		return historyLoadedMsg{Err: err}
	}

	// Hints are optional detail; a failed load still shows the attempts.
	hintsByQuestion := make(map[string][]store.HintEvent)
	if len(attempts) > 0 {
		// Hints are written right after the attempt they answer.
		oldest := attempts[len(attempts)-1].Sequence
		hints, err := repo.QueryHints(ctx, store.QueryOpts{After: oldest})
		if err == nil {
			for i := len(hints) - 1; i >= 0; i-- {
				h := hints[i]
				hintsByQuestion[h.QuestionID] = append(hintsByQuestion[h.QuestionID], h)
			}
		}
	}
	return historyLoadedMsg{Stats: stats, Attempts: attempts, Hints: hintsByQuestion}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
			s.attempts = msg.Attempts
			s.hints = msg.Hints
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return centered.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderStats(width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent attempts")))
	b.WriteString("\n\n")

	for i, a := range s.attempts {
		b.WriteString(layout.Centered(width, s.renderAttempt(i, a)))
		b.WriteString("\n")
		if s.expanded[i] {
			b.WriteString(s.renderDetails(width, a))
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderStats(width int) string {
	barWidth := min(width-8, 64)
	var b strings.Builder
	for _, st := range s.stats {
		label := fmt.Sprintf("%-26s %3d/%-3d", questions.DisplayName(questions.TypeID(st.QuestionType)), st.Correct, st.Attempts)
		bar := components.NewProgressBar(label, st.Accuracy(), true, barWidth)
		b.WriteString(layout.Centered(width, bar.View()))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderAttempt(i int, a store.AttemptEvent) string {
	mark := theme.Correct.Render("✓")
	if !a.Correct {
		mark = theme.Incorrect.Render("✗")
	}

	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		prefix = "> "
		style = style.Foreground(theme.Primary).Bold(true)
	}

	line := fmt.Sprintf("%s%s  %-26s  %d line%s",
		prefix,
		a.Timestamp.Local().Format("Jan 02 15:04"),
		questions.DisplayName(questions.TypeID(a.QuestionType)),
		len(a.Lines), plural(len(a.Lines)),
	)
	return style.Render(line) + "  " + mark
}

func (s *HistoryScreen) renderDetails(width int, a store.AttemptEvent) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var lines []string

	lines = append(lines, a.Prompt)
	for _, l := range a.Lines {
		lines = append(lines, fmt.Sprintf("  %s → %s", questions.FormatPoint(l.P1), questions.FormatPoint(l.P2)))
	}
	if len(a.MistakeCodes) > 0 {
		lines = append(lines, "Mistakes: "+strings.Join(a.MistakeCodes, ", "))
	}
	next := s.nextAttempt(a)
	for _, h := range s.hints[a.QuestionID] {
		if h.Sequence <= a.Sequence || (next > 0 && h.Sequence > next) {
			continue
		}
		prefix := "Hint: "
		if h.Source == store.HintSourceCoach {
			prefix = "Coach: "
		}
		lines = append(lines, prefix+h.HintText)
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(layout.Centered(width, dim.Render("    "+l)))
		b.WriteString("\n")
	}
	return b.String()
}

// nextAttempt returns the sequence of the following attempt on the same
// question, or 0.
func (s *HistoryScreen) nextAttempt(a store.AttemptEvent) int64 {
	var next int64
	for _, o := range s.attempts {
		if o.QuestionID == a.QuestionID && o.Sequence > a.Sequence && (next == 0 || o.Sequence < next) {
			next = o.Sequence
		}
	}
	return next
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
