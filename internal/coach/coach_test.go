package coach

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
	"github.com/abhisek/linedrill/internal/llm"
	"github.com/abhisek/linedrill/internal/questions"
)

func sampleRequest() *HintRequest {
	return &HintRequest{
		QuestionType: questions.TypeEquationLine,
		Prompt:       "Draw the line: y = 2x + 1",
		Lines: []geometry.Segment{
			{P1: geometry.Point{X: 0, Y: 1}, P2: geometry.Point{X: 1, Y: 2}},
		},
		Mistakes: []grading.Mistake{
			{Code: grading.WrongSlope, Meta: map[string]any{"expectedSlope": 2, "studentSlope": 1}},
		},
		PoolHints: []string{"How steep is your line?"},
	}
}

func TestCoach_Hint(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"question":"  If you move one step right, how far up should you go?  "}`),
	})
	c := New(mock, DefaultConfig())

	hint, err := c.Hint(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "If you move one step right, how far up should you go?", hint.Question)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, HintSchema, req.Schema)
	assert.Equal(t, DefaultConfig().MaxTokens, req.MaxTokens)
	assert.Contains(t, req.System, "Socratic")
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
}

func TestCoach_RejectsUnusableQuestions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"empty", `{"question":"   "}`, true},
		{"statement", `{"question":"Your slope should be 2."}`, true},
		{"not JSON", `slope?`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			_, err := New(mock, DefaultConfig()).Hint(context.Background(), sampleRequest())
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidHint), err)
		})
	}
}

func TestCoach_TooLongFailsSchema(t *testing.T) {
	long := strings.Repeat("a", MaxQuestionLength) + "?"
	content, _ := json.Marshal(Hint{Question: long})
	mock := llm.NewMockProvider(llm.MockResponse{Content: content})

	_, err := New(mock, DefaultConfig()).Hint(context.Background(), sampleRequest())
	var invalid *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid), "got %T (%v)", err, err)
}

func TestCheckQuestion(t *testing.T) {
	assert.NoError(t, checkQuestion("Which way does your line lean?"))
	assert.ErrorIs(t, checkQuestion(strings.Repeat("b", MaxQuestionLength)+"?"), ErrInvalidHint)
	assert.NoError(t, checkQuestion(strings.Repeat("é", MaxQuestionLength-1)+"?"))
}

func TestCoach_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	_, err := New(mock, DefaultConfig()).Hint(context.Background(), sampleRequest())
	var unavail *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))
}

func TestCoach_NilRequest(t *testing.T) {
	_, err := New(llm.NewMockProvider(), DefaultConfig()).Hint(context.Background(), nil)
	assert.Error(t, err)
}

type purposeProbe struct {
	purpose  string
	deadline bool
}

func (p *purposeProbe) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.purpose = llm.PurposeFrom(ctx)
	_, p.deadline = ctx.Deadline()
	return &llm.Response{Content: json.RawMessage(`{"question":"Why?"}`)}, nil
}
func (p *purposeProbe) Name() string    { return "probe" }
func (p *purposeProbe) ModelID() string { return "probe" }

func TestCoach_LabelsPurposeAndDeadline(t *testing.T) {
	probe := &purposeProbe{}
	cfg := DefaultConfig()
	cfg.Timeout = time.Minute

	_, err := New(probe, cfg).Hint(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, Purpose, probe.purpose)
	assert.True(t, probe.deadline)
}

func TestBuildHintMessage(t *testing.T) {
	msg, err := buildHintMessage(sampleRequest())
	require.NoError(t, err)

	assert.Contains(t, msg, "Exercise (Line from an equation): Draw the line: y = 2x + 1")
	assert.Contains(t, msg, "- from (0, 1) to (1, 2)")
	assert.Contains(t, msg, "- WRONG_SLOPE studentSlope=1\n")
	assert.Contains(t, msg, "Hints already shown:\n- How steep is your line?")
}

func TestBuildHintMessage_HidesExpectedValues(t *testing.T) {
	req := sampleRequest()
	req.Mistakes = append(req.Mistakes, grading.Mistake{
		Code: grading.WrongIntercept,
		Meta: map[string]any{"expectedIntercept": 7, "studentIntercept": -3},
	})
	msg, err := buildHintMessage(req)
	require.NoError(t, err)

	assert.NotContains(t, msg, "expected")
	assert.NotContains(t, msg, "=7")
	assert.Contains(t, msg, "- WRONG_INTERCEPT studentIntercept=-3\n")
	assert.Len(t, req.Mistakes[1].Meta, 2, "request metadata is left intact")
}

func TestBuildHintMessage_NoLines(t *testing.T) {
	req := &HintRequest{
		QuestionType: questions.TypeParallelFree,
		Prompt:       "p",
		Mistakes:     []grading.Mistake{{Code: grading.NoLineDrawn}},
	}
	msg, err := buildHintMessage(req)
	require.NoError(t, err)
	assert.Contains(t, msg, "The student drew nothing.")
	assert.Contains(t, msg, "- NO_LINE_DRAWN\n")
	assert.NotContains(t, msg, "Hints already shown")
}
