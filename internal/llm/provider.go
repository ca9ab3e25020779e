package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a language model.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name is the provider family, e.g. "anthropic" or "openrouter".
	Name() string

	// ModelID is the model the provider is configured with.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the provider for JSON matching it. Without a
	// schema the content is the raw model text.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must satisfy.
type Schema struct {
	// Name is kebab-case. It doubles as the OpenAI schema name and the
	// validator cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// finish validates content against the request schema and assembles the
// response every backend returns.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so full model IDs work too.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
