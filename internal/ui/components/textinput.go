package components

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linedrill/internal/ui/theme"
)

// ErrBadCoordinate is returned for input that is not an "x,y" pair.
var ErrBadCoordinate = errors.New(`enter a point as "x,y"`)

// CoordInput wraps bubbles/textinput for typing a board point.
type CoordInput struct {
	Model textinput.Model
	err   error
}

// NewCoordInput creates a focused, empty coordinate input.
func NewCoordInput() CoordInput {
	ti := textinput.New()
	ti.Placeholder = "x,y"
	ti.Prompt = "point> "
	ti.CharLimit = 16
	ti.Focus()
	return CoordInput{Model: ti}
}

// Init returns the initial command.
func (c CoordInput) Init() tea.Cmd {
	return c.Model.Focus()
}

// Update handles messages. Keys that cannot appear in a coordinate are
// dropped.
func (c CoordInput) Update(msg tea.Msg) (CoordInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if t := kmsg.Text; t != "" && !allowedCoordText(t) {
			return c, nil
		}
	}
	c.err = nil

	var cmd tea.Cmd
	c.Model, cmd = c.Model.Update(msg)
	return c, cmd
}

func allowedCoordText(t string) bool {
	for _, r := range t {
		if !strings.ContainsRune("0123456789-+., ()", r) {
			return false
		}
	}
	return true
}

// View renders the text input.
func (c CoordInput) View() string {
	view := c.Model.View()
	if c.err != nil {
		view += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render(c.err.Error())
	}
	return view
}

// Value returns the current input value.
func (c CoordInput) Value() string {
	return c.Model.Value()
}

// Reset clears the input and any error.
func (c *CoordInput) Reset() {
	c.Model.SetValue("")
	c.err = nil
}

// SetError shows err next to the input until the next keystroke.
func (c *CoordInput) SetError(err error) {
	c.err = err
}

// Point parses the input as a continuous position.
func (c CoordInput) Point() (x, y float64, err error) {
	return ParseCoord(c.Model.Value())
}

// ParseCoord parses "x,y", "(x, y)" or "x y".
func ParseCoord(s string) (x, y float64, err error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")

	var parts []string
	if strings.Contains(s, ",") {
		parts = strings.Split(s, ",")
	} else {
		parts = strings.Fields(s)
	}
	if len(parts) != 2 {
		return 0, 0, ErrBadCoordinate
	}

	x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad x %q", ErrBadCoordinate, strings.TrimSpace(parts[0]))
	}
	y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad y %q", ErrBadCoordinate, strings.TrimSpace(parts[1]))
	}
	return x, y, nil
}
