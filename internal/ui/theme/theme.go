package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, chalkboard tones.
var (
	Primary   = lipgloss.Color("#38BDF8") // Sky
	Secondary = lipgloss.Color("#A78BFA") // Lavender
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
	GridDot   = lipgloss.Color("#475569")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Board
var (
	// LineColors are cycled by line position on the board.
	LineColors = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(Primary).Bold(true),
		lipgloss.NewStyle().Foreground(Secondary).Bold(true),
	}

	Axis = lipgloss.NewStyle().
		Foreground(TextDim)

	Dot = lipgloss.NewStyle().
		Foreground(GridDot)

	PendingPoint = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Cursor = lipgloss.NewStyle().
		Background(Accent).
		Foreground(BgCard).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
