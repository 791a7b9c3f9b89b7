package services

import (
	"context"
	"fmt"

	"github.com/edupath/edubot/internal/core/domain"
	"github.com/edupath/edubot/internal/core/ports/driven"
	"github.com/edupath/edubot/internal/logger"
)

// DefaultTopK is the default number of passages retrieved per question.
const DefaultTopK = 4

// Retriever embeds a question and queries the cached index for the
// closest passages.
type Retriever struct {
	embedding driven.EmbeddingService
	loader    *IndexLoader
}

// NewRetriever creates a retriever over the given embedding service and
// index loader.
func NewRetriever(embedding driven.EmbeddingService, loader *IndexLoader) *Retriever {
	return &Retriever{embedding: embedding, loader: loader}
}

// Retrieve returns the k passages closest to the question.
// domain.ErrIndexNotFound passes through unchanged so callers can
// distinguish "no index yet" from other failures.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) ([]domain.ScoredPassage, error) {
	vectors, err := r.embedding.EmbedBatch(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: expected 1 question vector, got %d",
			domain.ErrEmbeddingFailed, len(vectors))
	}

	idx, err := r.loader.Get(ctx)
	if err != nil {
		return nil, err
	}

	results, err := idx.Search(vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	logger.Debug("Retrieved %d passages for question (%d chars)", len(results), len(question))
	return results, nil
}
