package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupath/edubot/internal/core/domain"
)

func TestRetriever_ReturnsNearestPassages(t *testing.T) {
	store := &mockIndexStore{index: testIndex(t)}
	embedding := &mockEmbeddingService{
		dims: 2,
		vectors: map[string][]float32{
			"about alpha": {0.9, 0.1},
		},
	}
	retriever := NewRetriever(embedding, NewIndexLoader(store))

	results, err := retriever.Retrieve(context.Background(), "about alpha", 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "alpha", results[0].Passage.Excerpt)
	assert.Equal(t, "beta", results[1].Passage.Excerpt)
	assert.LessOrEqual(t, results[0].Score, results[1].Score)
}

func TestRetriever_EmbeddingFailure(t *testing.T) {
	store := &mockIndexStore{index: testIndex(t)}
	embedding := &mockEmbeddingService{embedErr: domain.ErrEmbeddingFailed}
	retriever := NewRetriever(embedding, NewIndexLoader(store))

	_, err := retriever.Retrieve(context.Background(), "anything", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)
}

func TestRetriever_IndexNotFound(t *testing.T) {
	store := &mockIndexStore{loadErr: domain.ErrIndexNotFound}
	embedding := &mockEmbeddingService{dims: 2, defaultVec: []float32{1, 0}}
	retriever := NewRetriever(embedding, NewIndexLoader(store))

	_, err := retriever.Retrieve(context.Background(), "anything", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIndexNotFound)
}

func TestRetriever_DimensionMismatch(t *testing.T) {
	store := &mockIndexStore{index: testIndex(t)}
	embedding := &mockEmbeddingService{dims: 3, defaultVec: []float32{1, 0, 0}}
	retriever := NewRetriever(embedding, NewIndexLoader(store))

	_, err := retriever.Retrieve(context.Background(), "anything", 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDimensionMismatch))
}
