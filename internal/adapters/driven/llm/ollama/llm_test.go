package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupath/edubot/internal/core/domain"
	"github.com/edupath/edubot/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *GenerationService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewGenerationService(Config{BaseURL: srv.URL})
}

func TestGenerate(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		assert.Equal(t, "explain stacks", req.Prompt)
		assert.False(t, req.Stream)

		fmt.Fprint(w, `{"response":"A stack is LIFO.","done":true}`)
	})

	out, err := svc.Generate(context.Background(), "explain stacks")
	require.NoError(t, err)
	assert.Equal(t, "A stack is LIFO.", out)
}

func TestChat_FlattensMessages(t *testing.T) {
	var gotPrompt string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Prompt
		fmt.Fprint(w, `{"response":"ok","done":true}`)
	})

	out, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "You are a tutor."},
		{Role: "user", Content: "What is a queue?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Contains(t, gotPrompt, "System: You are a tutor.")
	assert.Contains(t, gotPrompt, "User: What is a queue?")
	assert.Contains(t, gotPrompt, "Assistant:")
}

func TestGenerate_ServerError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "model not found")
	})

	_, err := svc.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "model not found")
}

func TestGenerate_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	svc := NewGenerationService(Config{BaseURL: srv.URL})
	_, err := svc.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestPing(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		fmt.Fprint(w, `{"models":[]}`)
	})

	require.NoError(t, svc.Ping(context.Background()))
}
