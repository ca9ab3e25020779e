package store

import (
	"context"
	"time"

	"github.com/abhisek/linedrill/internal/geometry"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are ordered newest first.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // attempts and hints only
}

// AttemptEventData captures one graded submission.
type AttemptEventData struct {
	SessionID    string
	QuestionID   string
	QuestionType string
	Prompt       string
	Lines        []geometry.Segment
	Correct      bool
	MistakeCodes []string
}

// AttemptEvent is a stored AttemptEventData.
type AttemptEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// Hint sources.
const (
	HintSourcePool  = "pool"
	HintSourceCoach = "coach"
)

// HintEventData captures one hint shown to the student.
type HintEventData struct {
	SessionID    string
	QuestionID   string
	QuestionType string
	Source       string
	HintText     string
}

// HintEvent is a stored HintEventData.
type HintEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	HintEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// TypeStats aggregates attempts for one question type.
type TypeStats struct {
	QuestionType string
	Attempts     int
	Correct      int
}

// Accuracy returns the share of correct attempts, or 0 with no attempts.
func (s TypeStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// LLMUsage aggregates LLM calls for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendAttempt records a graded submission.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// AppendHint records a hint shown to the student.
	AppendHint(ctx context.Context, data HintEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error)
	QueryHints(ctx context.Context, opts QueryOpts) ([]HintEvent, error)
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event with the given id, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// TypeStats returns per-type attempt counts, ordered by type id.
	TypeStats(ctx context.Context) ([]TypeStats, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// ClearHistory deletes every attempt and hint event. LLM events and the
	// sequence counter are kept.
	ClearHistory(ctx context.Context) error
}
