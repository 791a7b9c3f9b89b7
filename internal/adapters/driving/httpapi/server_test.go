package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupath/edubot/internal/core/domain"
)

// mockAnswerService is a scriptable driving.AnswerService.
type mockAnswerService struct {
	answer       domain.Answer
	err          error
	lastQuestion string
}

func (m *mockAnswerService) Ask(_ context.Context, question string) (domain.Answer, error) {
	m.lastQuestion = question
	if m.err != nil {
		return domain.Answer{}, m.err
	}
	return m.answer, nil
}

// mockIngestService is a scriptable driving.IngestService.
type mockIngestService struct {
	stats       domain.IngestStats
	err         error
	lastDir     string
	invalidated int
}

func (m *mockIngestService) Ingest(_ context.Context, dir string) (domain.IngestStats, error) {
	m.lastDir = dir
	if m.err != nil {
		return domain.IngestStats{}, m.err
	}
	return m.stats, nil
}

func (m *mockIngestService) InvalidateCache() {
	m.invalidated++
}

func newTestServer(answer *mockAnswerService, ingest *mockIngestService) *Server {
	return NewServer(":0", answer, ingest)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestAsk_Success(t *testing.T) {
	answer := &mockAnswerService{
		answer: domain.Answer{
			Text: "The derivative measures rate of change.",
			Sources: []domain.Passage{
				{SourceFile: "calculus.pdf", Page: 3, Excerpt: "The derivative..."},
			},
			ModelUsed:  "gpt-4o-mini",
			NumSources: 1,
		},
	}
	srv := newTestServer(answer, &mockIngestService{})

	rec := doRequest(t, srv, http.MethodPost, "/chat/ask", `{"question":"What is a derivative?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got domain.Answer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "The derivative measures rate of change.", got.Text)
	assert.Equal(t, "gpt-4o-mini", got.ModelUsed)
	assert.Equal(t, 1, got.NumSources)
	require.Len(t, got.Sources, 1)
	assert.Equal(t, "calculus.pdf", got.Sources[0].SourceFile)

	assert.Equal(t, "What is a derivative?", answer.lastQuestion)
}

func TestAsk_QuestionLengthBounds(t *testing.T) {
	tests := []struct {
		name     string
		question string
		wantCode int
	}{
		{"too short", "ab", http.StatusBadRequest},
		{"minimum length", "abc", http.StatusOK},
		{"maximum length", strings.Repeat("q", 1000), http.StatusOK},
		{"too long", strings.Repeat("q", 1001), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockAnswerService{}, &mockIngestService{})
			body, err := json.Marshal(askRequest{Question: tt.question})
			require.NoError(t, err)

			rec := doRequest(t, srv, http.MethodPost, "/chat/ask", string(body))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestAsk_InvalidJSON(t *testing.T) {
	srv := newTestServer(&mockAnswerService{}, &mockIngestService{})
	rec := doRequest(t, srv, http.MethodPost, "/chat/ask", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAsk_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"index not found", domain.ErrIndexNotFound, http.StatusServiceUnavailable},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"embedding failure", domain.ErrEmbeddingFailed, http.StatusInternalServerError},
		{"generation failure", domain.ErrGenerationFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockAnswerService{err: tt.err}, &mockIngestService{})
			rec := doRequest(t, srv, http.MethodPost, "/chat/ask", `{"question":"valid question"}`)
			assert.Equal(t, tt.wantCode, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestIngest_Success(t *testing.T) {
	ingest := &mockIngestService{
		stats: domain.IngestStats{
			FilesProcessed: 2,
			TotalPages:     10,
			TotalChunks:    40,
			IndexPath:      "/srv/index",
		},
	}
	srv := newTestServer(&mockAnswerService{}, ingest)

	rec := doRequest(t, srv, http.MethodPost, "/admin/ingest", `{"source_dir":"/srv/course"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ingestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.FilesProcessed)
	assert.Equal(t, 40, resp.TotalChunks)
	assert.Equal(t, "/srv/course", ingest.lastDir)
}

func TestIngest_EmptyBodyUsesConfiguredDir(t *testing.T) {
	ingest := &mockIngestService{}
	srv := newTestServer(&mockAnswerService{}, ingest)

	rec := doRequest(t, srv, http.MethodPost, "/admin/ingest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, ingest.lastDir)
}

func TestIngest_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"source missing", domain.ErrSourceUnavailable, http.StatusNotFound},
		{"no supported files", domain.ErrInvalidInput, http.StatusBadRequest},
		{"extraction failure", domain.ErrExtractionFailed, http.StatusUnprocessableEntity},
		{"embedding failure", domain.ErrEmbeddingFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockAnswerService{}, &mockIngestService{err: tt.err})
			rec := doRequest(t, srv, http.MethodPost, "/admin/ingest", `{}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestClearCache(t *testing.T) {
	ingest := &mockIngestService{}
	srv := newTestServer(&mockAnswerService{}, ingest)

	rec := doRequest(t, srv, http.MethodDelete, "/admin/cache", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, ingest.invalidated)

	// Idempotent: a second call succeeds the same way.
	rec = doRequest(t, srv, http.MethodDelete, "/admin/cache", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, ingest.invalidated)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&mockAnswerService{}, &mockIngestService{})
	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&mockAnswerService{}, &mockIngestService{})
	rec := doRequest(t, srv, http.MethodGet, "/chat/ask", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
