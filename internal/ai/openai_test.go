package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/tantasui/decentradocs/internal/pkg/errors"
)

func TestOpenAIChat(t *testing.T) {
	var gotReq openAIChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "  the answer  "}},
			},
		})
	}))
	defer srv.Close()

	p := &openAIProvider{apiKey: "test-key", baseURL: srv.URL}
	out, err := p.Chat(context.Background(), "gpt-4o-mini", "system prompt", "user question", 0.2, 256)
	require.NoError(t, err)
	require.Equal(t, "the answer", out)

	require.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	require.Equal(t, "system", gotReq.Messages[0].Role)
	require.Equal(t, "system prompt", gotReq.Messages[0].Content)
	require.Equal(t, "user", gotReq.Messages[1].Role)
	require.Equal(t, 256, gotReq.MaxTokens)
	require.False(t, gotReq.Stream)
}

func TestOpenAIChatServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := &openAIProvider{apiKey: "test-key", baseURL: srv.URL}
	_, err := p.Chat(context.Background(), "gpt-4o-mini", "", "question", 0.2, 0)
	require.ErrorIs(t, err, appErr.ErrProvider)
}

func TestOpenAIChatNoAPIKey(t *testing.T) {
	p := &openAIProvider{baseURL: defaultOpenAIBaseURL}
	_, err := p.Chat(context.Background(), "gpt-4o-mini", "", "question", 0.2, 0)
	require.ErrorIs(t, err, appErr.ErrUnavailable)
}

func TestOpenAIEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		var req openAIEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "text-embedding-3-small", req.Model)
		require.Equal(t, "some text", req.Input)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float32{0.1, 0.2, 0.3}},
			},
		})
	}))
	defer srv.Close()

	p := &openAIEmbedProvider{apiKey: "test-key", baseURL: srv.URL}
	v, err := p.Embed(context.Background(), "text-embedding-3-small", "some text")
	require.NoError(t, err)
	require.Equal(t, []float32{0.1, 0.2, 0.3}, v)
}

func TestOpenAIEmbedEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
	}))
	defer srv.Close()

	p := &openAIEmbedProvider{apiKey: "test-key", baseURL: srv.URL}
	_, err := p.Embed(context.Background(), "text-embedding-3-small", "some text")
	require.ErrorIs(t, err, appErr.ErrProvider)
}
