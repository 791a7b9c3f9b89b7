package services

import (
	"context"
	"sync/atomic"

	"github.com/edupath/edubot/internal/core/domain"
	"github.com/edupath/edubot/internal/core/ports/driven"
)

// mockEmbeddingService implements driven.EmbeddingService for testing.
// It returns a deterministic vector per text so retrieval tests can
// control distances.
type mockEmbeddingService struct {
	dims       int
	vectors    map[string][]float32
	defaultVec []float32
	embedErr   error
	calls      atomic.Int64
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.calls.Add(1)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := m.vectors[text]; ok {
			out[i] = v
			continue
		}
		out[i] = m.defaultVec
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	return m.dims
}

func (m *mockEmbeddingService) ModelName() string {
	return "mock-embedding"
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockGenerationService implements driven.GenerationService for testing.
type mockGenerationService struct {
	response   string
	generErr   error
	calls      atomic.Int64
	lastPrompt string
	model      string
}

func (m *mockGenerationService) Generate(_ context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	m.lastPrompt = prompt
	if m.generErr != nil {
		return "", m.generErr
	}
	return m.response, nil
}

func (m *mockGenerationService) Chat(ctx context.Context, messages []driven.ChatMessage) (string, error) {
	var prompt string
	for _, msg := range messages {
		prompt += msg.Content + "\n"
	}
	return m.Generate(ctx, prompt)
}

func (m *mockGenerationService) ModelName() string {
	if m.model != "" {
		return m.model
	}
	return "mock-model"
}

func (m *mockGenerationService) Ping(_ context.Context) error {
	return nil
}

func (m *mockGenerationService) Close() error {
	return nil
}

// mockDocumentSource implements driven.DocumentSource for testing.
type mockDocumentSource struct {
	docs    []domain.Document
	files   int
	loadErr error
}

func (m *mockDocumentSource) Load(_ context.Context, _ string) ([]domain.Document, int, error) {
	if m.loadErr != nil {
		return nil, 0, m.loadErr
	}
	return m.docs, m.files, nil
}
