package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ui_review_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	var captured ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Score: 7/10. Clear but misses the layout issue."}},
			},
			"usage": map[string]int{"prompt_tokens": 50, "completion_tokens": 20, "total_tokens": 70},
		})
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})

	text, usage, err := svc.Evaluate("the button contrast is too low", "")
	require.NoError(t, err)
	assert.Equal(t, "Score: 7/10. Clear but misses the layout issue.", text)
	require.NotNil(t, usage)
	assert.Equal(t, 70, usage.TotalTokens)

	assert.Equal(t, "gpt-4o-mini", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.NotEmpty(t, captured.Messages[0].Content) // default prompt applied
	assert.Equal(t, "the button contrast is too low", captured.Messages[1].Content)
	assert.InDelta(t, 0.7, captured.Temperature, 1e-9)
	assert.Equal(t, 1000, captured.MaxTokens)
}

func TestEvaluateUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL, Model: "gpt-4o-mini"})

	_, _, err := svc.Evaluate("some answer", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
