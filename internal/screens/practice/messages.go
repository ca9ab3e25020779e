package practice

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/linedrill/internal/coach"
)

// coachHintMsg carries the coach's reply for a submission. Submit numbers
// submissions within the screen so late replies can be matched.
type coachHintMsg struct {
	Submit   int
	Question string
	Err      error
}

// requestHint asks the coach off the UI goroutine. The coach applies its own
// timeout.
func requestHint(c *coach.Coach, req *coach.HintRequest, submit int) tea.Cmd {
	return func() tea.Msg {
		hint, err := c.Hint(context.Background(), req)
		if err != nil {
			return coachHintMsg{Submit: submit, Err: err}
		}
		return coachHintMsg{Submit: submit, Question: hint.Question}
	}
}
