// Package httpapi exposes the answering and ingestion services over HTTP.
//
// The surface mirrors the CLI: a chat route for students and admin routes
// for rebuilding the index and clearing the in-process cache.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/edupath/edubot/internal/core/domain"
	"github.com/edupath/edubot/internal/core/ports/driving"
	"github.com/edupath/edubot/internal/logger"
)

// Question length bounds, enforced before the service is invoked.
const (
	MinQuestionLen = 3
	MaxQuestionLen = 1000
)

// Server routes HTTP requests to the answering and ingestion services.
type Server struct {
	answer driving.AnswerService
	ingest driving.IngestService
	addr   string
	srv    *http.Server
}

// NewServer creates an HTTP server bound to addr.
func NewServer(addr string, answer driving.AnswerService, ingest driving.IngestService) *Server {
	s := &Server{
		answer: answer,
		ingest: ingest,
		addr:   addr,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/chat/ask", s.handleAsk).Methods(http.MethodPost)
	r.HandleFunc("/admin/ingest", s.handleIngest).Methods(http.MethodPost)
	r.HandleFunc("/admin/cache", s.handleClearCache).Methods(http.MethodDelete)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", s.addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// askRequest is the /chat/ask request body.
type askRequest struct {
	Question string `json:"question"`
}

// ingestRequest is the /admin/ingest request body.
type ingestRequest struct {
	SourceDir string `json:"source_dir"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

// statusResponse is the body for simple acknowledgements.
type statusResponse struct {
	Status string `json:"status"`
}

// ingestResponse wraps the ingestion statistics with a status marker.
type ingestResponse struct {
	Status string `json:"status"`
	domain.IngestStats
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if n := len(req.Question); n < MinQuestionLen || n > MaxQuestionLen {
		writeError(w, http.StatusBadRequest, "question must be between 3 and 1000 characters")
		return
	}

	answer, err := s.answer.Ask(r.Context(), req.Question)
	if err != nil {
		s.writeAskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// writeAskError maps answering failures to status codes.
func (s *Server) writeAskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrIndexNotFound):
		writeError(w, http.StatusServiceUnavailable, "no index available, run ingestion first")
	default:
		logger.Warn("Answer failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	stats, err := s.ingest.Ingest(r.Context(), req.SourceDir)
	if err != nil {
		s.writeIngestError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{Status: "ok", IngestStats: stats})
}

// writeIngestError maps ingestion failures to status codes.
func (s *Server) writeIngestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSourceUnavailable):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrExtractionFailed):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Warn("Ingestion failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	s.ingest.InvalidateCache()
	writeJSON(w, http.StatusOK, statusResponse{Status: "cache cleared"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
