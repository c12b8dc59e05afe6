package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]any
		require.NoError(t, json.Unmarshal(raw, &req))
		assert.Equal(t, "text-embedding-3-small", req["model"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	server := newOpenAIServer(t, http.StatusOK, `{
		"object": "list",
		"data": [{"object": "embedding", "index": 0, "embedding": [0.25, -0.5, 1]}],
		"model": "text-embedding-3-small",
		"usage": {"prompt_tokens": 1, "total_tokens": 1}
	}`)

	embedder := NewOpenAIEmbedder(server.URL+"/v1", "sk-test", "text-embedding-3-small")
	vector, err := embedder.Embed(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -0.5, 1}, vector)
}

func TestOpenAIEmbedder_EmptyData(t *testing.T) {
	server := newOpenAIServer(t, http.StatusOK, `{"object": "list", "data": [], "model": "text-embedding-3-small"}`)

	embedder := NewOpenAIEmbedder(server.URL+"/v1", "sk-test", "text-embedding-3-small")
	_, err := embedder.Embed(context.Background(), "Hello")
	assert.EqualError(t, err, "no embedding generated")
}

func TestOpenAIEmbedder_IsTransient(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		transient bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, transient: true},
		{name: "server error", status: http.StatusBadGateway, transient: true},
		{name: "bad key", status: http.StatusUnauthorized, transient: false},
		{name: "bad request", status: http.StatusBadRequest, transient: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := newOpenAIServer(t, tc.status, `{"error": {"message": "failure", "type": "error"}}`)

			embedder := NewOpenAIEmbedder(server.URL+"/v1", "sk-test", "text-embedding-3-small")
			_, err := embedder.Embed(context.Background(), "Hello")
			require.Error(t, err)
			assert.Equal(t, tc.transient, embedder.IsTransient(err))
		})
	}
}

func TestOpenAIEmbedder_IsTransient_Context(t *testing.T) {
	embedder := NewOpenAIEmbedder("", "sk-test", "text-embedding-3-small")
	assert.False(t, embedder.IsTransient(context.Canceled))
	assert.False(t, embedder.IsTransient(context.DeadlineExceeded))
}
