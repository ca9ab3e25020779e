package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, name string, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return newOpenAICompatible(name, "test-key", server.URL, "gpt-4o-mini", server.Client())
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20},
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var got map[string]any
	p := newTestOpenAIProvider(t, ProviderOpenAI, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"name":"Ada","age":9}`, "stop"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "sys",
		Messages:  []Message{{Role: RoleUser, Content: "hi"}},
		Schema:    testSchema(),
		MaxTokens: 64,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","age":9}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 12, OutputTokens: 8, TotalTokens: 20}, resp.Usage)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)

	messages, _ := got["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	format, _ := got["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAIProvider_SchemaMismatch(t *testing.T) {
	p := newTestOpenAIProvider(t, ProviderOpenAI, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"name":"Ada"}`, "stop"))
	})

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		Schema:   testSchema(),
	})
	var invalid *ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid), "got %T (%v)", err, err)
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := newTestOpenAIProvider(t, ProviderOpenAI, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"name":`, "length"))
	})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	var maxTok *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &maxTok), "got %T (%v)", err, err)
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	p := newTestOpenAIProvider(t, ProviderOpenRouter, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "x", "object": "chat.completion", "choices": []any{}})
	})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	var invalid *ErrInvalidResponse
	require.True(t, errors.As(err, &invalid), "got %T (%v)", err, err)
	assert.Contains(t, err.Error(), "openrouter")
}

func TestOpenAIProvider_ErrorStatus(t *testing.T) {
	tests := []struct {
		status    int
		rateLimit bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, false},
		{http.StatusServiceUnavailable, false},
	}
	for _, tt := range tests {
		p := newTestOpenAIProvider(t, ProviderOpenAI, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "failure", "type": "server_error"},
			})
		})

		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
		var rl *ErrRateLimit
		var unavail *ErrProviderUnavailable
		if tt.rateLimit {
			assert.True(t, errors.As(err, &rl), "status %d: got %T", tt.status, err)
		} else {
			assert.True(t, errors.As(err, &unavail), "status %d: got %T", tt.status, err)
		}
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-001"})
	assert.Error(t, err, "empty API key")

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
	require.NoError(t, err)
	assert.Equal(t, "openrouter", p.Name())
	// Model IDs are not mapped through the OpenAI friendly names.
	assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID())

	o, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk"})
	require.NoError(t, err)
	assert.Equal(t, "openai", o.Name())
}
