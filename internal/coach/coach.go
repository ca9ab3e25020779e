// Package coach asks a language model for one Socratic question that nudges
// a student toward fixing an incorrect drawing. It complements the static
// hint pools in package feedback.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
	"github.com/abhisek/linedrill/internal/llm"
	"github.com/abhisek/linedrill/internal/questions"
)

// Purpose labels coach calls in the LLM event log.
const Purpose = "hint-coach"

// MaxQuestionLength bounds the coach question in characters.
const MaxQuestionLength = 200

// ErrInvalidHint reports a model reply that parsed but is not a usable question.
var ErrInvalidHint = errors.New("invalid coach hint")

// Config holds coach generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   160,
		Temperature: 0.4,
		Timeout:     20 * time.Second,
	}
}

// Coach turns a failed grade into a Socratic question.
type Coach struct {
	provider llm.Provider
	cfg      Config
}

// New creates a coach backed by provider.
func New(provider llm.Provider, cfg Config) *Coach {
	return &Coach{provider: provider, cfg: cfg}
}

// HintRequest describes the failed attempt.
type HintRequest struct {
	QuestionType questions.TypeID
	Prompt       string
	Lines        []geometry.Segment
	Mistakes     []grading.Mistake

	// PoolHints are the static hints already shown, so the coach can avoid
	// repeating them.
	PoolHints []string
}

// Hint is the coach output.
type Hint struct {
	Question string `json:"question"`
}

// Hint asks the model for one question. The call is bounded by the
// configured timeout on top of ctx.
func (c *Coach) Hint(ctx context.Context, req *HintRequest) (*Hint, error) {
	if req == nil {
		return nil, errors.New("coach hint: nil request")
	}
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	userMsg, err := buildHintMessage(req)
	if err != nil {
		return nil, fmt.Errorf("build coach prompt: %w", err)
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      HintSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("coach hint: %w", err)
	}

	var out Hint
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse coach hint: %w", err)
	}
	out.Question = strings.TrimSpace(out.Question)
	if err := checkQuestion(out.Question); err != nil {
		return nil, err
	}
	return &out, nil
}

func checkQuestion(q string) error {
	switch {
	case q == "":
		return fmt.Errorf("%w: empty question", ErrInvalidHint)
	case utf8.RuneCountInString(q) > MaxQuestionLength:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidHint, MaxQuestionLength)
	case !strings.HasSuffix(q, "?"):
		return fmt.Errorf("%w: not a question", ErrInvalidHint)
	}
	return nil
}

const systemPrompt = `You are a patient geometry tutor. A student drew line(s) on a grid from x = -10 to 10 and y = -10 to 10 and got the exercise wrong.

Instructions:
- Reply with exactly one short Socratic question that helps the student notice their mistake.
- Never state the answer, the correct slope, intercept or coordinates.
- Do not repeat the hints the student has already seen.
- Keep it under 200 characters and end with a question mark.`

type promptData struct {
	TypeName string
	*HintRequest
}

var hintTemplate = template.Must(template.New("hint").Funcs(template.FuncMap{
	"point":   questions.FormatPoint,
	"student": studentMeta,
}).Parse(`Exercise ({{.TypeName}}): {{.Prompt}}
{{if .Lines}}Student lines:
{{range .Lines}}- from {{point .P1}} to {{point .P2}}
{{end}}{{else}}The student drew nothing.
{{end}}Detected mistakes:
{{range .Mistakes}}- {{.Code}}{{range $k, $v := student .Meta}} {{$k}}={{$v}}{{end}}
{{end}}{{if .PoolHints}}Hints already shown:
{{range .PoolHints}}- {{.}}
{{end}}{{end}}`))

// studentMeta drops the expected values from mistake metadata. The model must
// not be able to quote the answer.
func studentMeta(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		if strings.HasPrefix(k, "expected") {
			continue
		}
		out[k] = v
	}
	return out
}

func buildHintMessage(req *HintRequest) (string, error) {
	var buf bytes.Buffer
	data := promptData{TypeName: questions.DisplayName(req.QuestionType), HintRequest: req}
	if err := hintTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
