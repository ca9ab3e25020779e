package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/linedrill/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	// Init returns an initial command when the screen is pushed.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a status on the right
// of the header, such as a running score.
type StatusProvider interface {
	Status() string
}
