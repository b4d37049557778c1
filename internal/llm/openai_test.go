package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewOpenAIClient("test-key", "gpt-4o")
	require.NoError(t, err)
	client.baseURL = server.URL
	return client
}

func TestOpenAIGenerateText(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Nil(t, req.ResponseFormat)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "Dear Hiring Manager,"}}]}`))
	})

	text, err := client.GenerateText(context.Background(), "write a letter")
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager,", text)
}

func TestOpenAIGenerateJSON_SetsResponseFormat(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		w.Write([]byte("{\"choices\": [{\"message\": {\"role\": \"assistant\", \"content\": \"```json\\n{\\\"ok\\\": true}\\n```\"}}]}"))
	})

	text, err := client.GenerateJSON(context.Background(), "return JSON")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, text)
}

func TestOpenAIGenerateText_APIError(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit exceeded", "type": "rate_limit_error"}}`))
	})

	_, err := client.GenerateText(context.Background(), "prompt")
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "openai", genErr.Provider)
	assert.Contains(t, genErr.Message, "rate limit exceeded")
}

func TestOpenAIGenerateText_EmptyCompletion(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := client.GenerateText(context.Background(), "prompt")
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Message, "empty completion")
}

func TestNewOpenAIClient_Validation(t *testing.T) {
	_, err := NewOpenAIClient("", "gpt-4o")
	require.Error(t, err)

	_, err = NewOpenAIClient("key", "")
	require.Error(t, err)
}
