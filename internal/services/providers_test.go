package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kayaai/career-navigator/internal/config"
	"kayaai/career-navigator/internal/logging"
)

func jsonServer(t *testing.T, status int, body any, seen func(r *http.Request, payload map[string]any)) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		payload := map[string]any{}
		_ = json.Unmarshal(raw, &payload)
		if seen != nil {
			seen(r, payload)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestOpenAICompatProvider_Generate(t *testing.T) {
	var (
		path    string
		auth    string
		payload map[string]any
	)
	ts := jsonServer(t, http.StatusOK, map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "openai/gpt-3.5-turbo",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": "SCORE: 70"},
		}},
	}, func(r *http.Request, p map[string]any) {
		path, auth, payload = r.URL.Path, r.Header.Get("Authorization"), p
	})

	p := NewOpenAICompatProvider(config.ProviderConfig{
		Name:        "OpenRouter",
		Kind:        config.KindOpenAI,
		BaseURL:     ts.URL + "/",
		Model:       "openai/gpt-3.5-turbo",
		APIKey:      "sk-test",
		Temperature: 0.7,
		MaxTokens:   2000,
	}, 5*time.Second, logging.Nop)

	text, ok := p.Generate(context.Background(), "hello")

	require.True(t, ok)
	assert.Equal(t, "SCORE: 70", text)
	assert.Equal(t, "OpenRouter", p.Name())
	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "openai/gpt-3.5-turbo", payload["model"])
	assert.EqualValues(t, 2000, payload["max_tokens"])
	assert.InDelta(t, 0.7, payload["temperature"], 0.0001)
}

func TestOpenAICompatProvider_AbsentOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
	}{
		{"bad request", http.StatusBadRequest, map[string]any{"error": map[string]any{"message": "bad"}}},
		{"no choices", http.StatusOK, map[string]any{"id": "x", "object": "chat.completion", "choices": []any{}}},
		{"empty content", http.StatusOK, map[string]any{"id": "x", "object": "chat.completion", "choices": []map[string]any{{
			"index": 0, "finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": "  "},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := jsonServer(t, tt.status, tt.body, nil)
			p := NewOpenAICompatProvider(config.ProviderConfig{
				Name: "Mistral", Kind: config.KindOpenAI, BaseURL: ts.URL + "/", Model: "mistral-tiny", APIKey: "k", MaxTokens: 10,
			}, 5*time.Second, logging.Nop)

			text, ok := p.Generate(context.Background(), "hello")
			assert.False(t, ok)
			assert.Empty(t, text)
		})
	}
}

func TestOpenAICompatProvider_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	p := NewOpenAICompatProvider(config.ProviderConfig{
		Name: "Mistral", Kind: config.KindOpenAI, BaseURL: ts.URL + "/", Model: "mistral-tiny", APIKey: "k", MaxTokens: 10,
	}, 50*time.Millisecond, logging.Nop)

	_, ok := p.Generate(context.Background(), "hello")
	assert.False(t, ok)
}

func TestGeminiProvider_Generate(t *testing.T) {
	var path string
	ts := jsonServer(t, http.StatusOK, map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": "**IDEAL RESUME**"}},
			},
			"finishReason": "STOP",
		}},
	}, func(r *http.Request, _ map[string]any) {
		path = r.URL.Path
	})

	p, err := NewGeminiProvider(config.ProviderConfig{
		Name:        "Gemini",
		Kind:        config.KindGemini,
		BaseURL:     ts.URL + "/",
		Model:       "gemini-1.5-flash-latest",
		APIKey:      "test-key",
		Temperature: 0.7,
		MaxTokens:   2048,
		TopK:        1,
		TopP:        1,
	}, 5*time.Second, logging.Nop)
	require.NoError(t, err)

	text, ok := p.Generate(context.Background(), "hello")

	require.True(t, ok)
	assert.Equal(t, "**IDEAL RESUME**", text)
	assert.True(t, strings.HasSuffix(path, "models/gemini-1.5-flash-latest:generateContent"), path)
}

func TestGeminiProvider_AbsentOnFailure(t *testing.T) {
	ts := jsonServer(t, http.StatusBadRequest, map[string]any{
		"error": map[string]any{"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"},
	}, nil)

	p, err := NewGeminiProvider(config.ProviderConfig{
		Name: "Gemini", Kind: config.KindGemini, BaseURL: ts.URL + "/", Model: "gemini-1.5-flash-latest", APIKey: "bad", MaxTokens: 10,
	}, 5*time.Second, logging.Nop)
	require.NoError(t, err)

	text, ok := p.Generate(context.Background(), "hello")
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestAnthropicProvider_Generate(t *testing.T) {
	var (
		path    string
		key     string
		payload map[string]any
	)
	ts := jsonServer(t, http.StatusOK, map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-3-haiku-20240307",
		"stop_reason": "end_turn",
		"content": []map[string]any{
			{"type": "text", "text": "SCORE: 81"},
			{"type": "text", "text": "GAPS: none worth noting here"},
		},
		"usage": map[string]any{"input_tokens": 10, "output_tokens": 5},
	}, func(r *http.Request, p map[string]any) {
		path, key, payload = r.URL.Path, r.Header.Get("X-Api-Key"), p
	})

	p := NewAnthropicProvider(config.ProviderConfig{
		Name:        "Claude",
		Kind:        config.KindAnthropic,
		BaseURL:     ts.URL + "/",
		Model:       "claude-3-haiku-20240307",
		APIKey:      "sk-ant",
		Temperature: 0.7,
		MaxTokens:   2000,
	}, 5*time.Second, logging.Nop)

	text, ok := p.Generate(context.Background(), "hello")

	require.True(t, ok)
	assert.Equal(t, "SCORE: 81\nGAPS: none worth noting here", text)
	assert.Equal(t, "/v1/messages", path)
	assert.Equal(t, "sk-ant", key)
	assert.Equal(t, "claude-3-haiku-20240307", payload["model"])
}

func TestAnthropicProvider_AbsentOnFailure(t *testing.T) {
	ts := jsonServer(t, http.StatusBadRequest, map[string]any{
		"type":  "error",
		"error": map[string]any{"type": "invalid_request_error", "message": "bad"},
	}, nil)

	p := NewAnthropicProvider(config.ProviderConfig{
		Name: "Claude", Kind: config.KindAnthropic, BaseURL: ts.URL + "/", Model: "claude-3-haiku-20240307", APIKey: "k", MaxTokens: 10,
	}, 5*time.Second, logging.Nop)

	_, ok := p.Generate(context.Background(), "hello")
	assert.False(t, ok)
}

func TestGenerateText_RecoversPanics(t *testing.T) {
	text, ok := generateText(context.Background(), "Broken", time.Second, logging.Nop,
		func(context.Context, string) (string, error) { panic("boom") }, "hello")

	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestBuildProviders(t *testing.T) {
	cfg := config.ProvidersConfig{
		Timeout: time.Second,
		Chain: []config.ProviderConfig{
			{Name: "Gemini", Kind: config.KindGemini, Model: "gemini-1.5-flash-latest", APIKeyEnv: "GEMINI_API_KEY", MaxTokens: 2048},
			{Name: "OpenRouter", Kind: config.KindOpenAI, Model: "openai/gpt-3.5-turbo", APIKey: "sk", MaxTokens: 2000},
			{Name: "Broken", Kind: "unknown", Model: "m", APIKey: "k", MaxTokens: 1},
		},
	}

	providers := BuildProviders(cfg, logging.Nop)

	require.Len(t, providers, 3)
	assert.Equal(t, []string{"Gemini", "OpenRouter", "Broken"}, []string{providers[0].Name(), providers[1].Name(), providers[2].Name()})

	_, isUnavailable := providers[0].(*unavailableProvider)
	assert.True(t, isUnavailable)
	_, isUnavailable = providers[2].(*unavailableProvider)
	assert.True(t, isUnavailable)

	text, ok := providers[0].Generate(context.Background(), "hello")
	assert.False(t, ok)
	assert.Empty(t, text)
}
