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
	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL + "/",
	})
	require.NoError(t, err)
	return p
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, "gemini-2.0-flash:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"name":"Ada","age":9}`}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     7,
				"candidatesTokenCount": 3,
				"totalTokenCount":      10,
			},
		})
	})

	resp, err := p.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		Schema:   testSchema(),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","age":9}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 7, OutputTokens: 3, TotalTokens: 10}, resp.Usage)
	assert.Equal(t, "gemini-2.0-flash", resp.Model)
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"},
		})
	})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl), "got %T (%v)", err, err)
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "maxLength": 200},
			"tags":     map[string]any{"type": "array", "items": map[string]any{"type": "string", "enum": []any{"slope", "intercept"}}},
			"n":        map[string]any{"type": "integer"},
		},
		"required": []string{"question"},
	}

	s := geminiSchema(def)
	assert.Equal(t, genai.TypeObject, s.Type)
	require.Len(t, s.Properties, 3)
	assert.Equal(t, genai.TypeString, s.Properties["question"].Type)
	require.NotNil(t, s.Properties["question"].MaxLength)
	assert.Equal(t, int64(200), *s.Properties["question"].MaxLength)
	assert.Equal(t, genai.TypeArray, s.Properties["tags"].Type)
	assert.Equal(t, []string{"slope", "intercept"}, s.Properties["tags"].Items.Enum)
	assert.Equal(t, genai.TypeInteger, s.Properties["n"].Type)
	assert.Equal(t, []string{"question"}, s.Required)
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{})
	assert.Error(t, err)
}
