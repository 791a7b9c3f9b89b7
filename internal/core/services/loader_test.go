package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupath/edubot/internal/core/domain"
	"github.com/edupath/edubot/internal/vectorindex"
)

// mockIndexStore implements driven.IndexStore for testing.
type mockIndexStore struct {
	index     *vectorindex.Index
	loadErr   error
	saveErr   error
	loadCalls atomic.Int64
	saveCalls atomic.Int64
	saved     *vectorindex.Index
}

func (m *mockIndexStore) Save(_ context.Context, idx *vectorindex.Index) error {
	m.saveCalls.Add(1)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = idx
	return nil
}

func (m *mockIndexStore) Load(_ context.Context) (*vectorindex.Index, error) {
	m.loadCalls.Add(1)
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.index == nil {
		return nil, domain.ErrIndexNotFound
	}
	return m.index, nil
}

func (m *mockIndexStore) Path() string {
	return "/tmp/test-index"
}

func (m *mockIndexStore) Close() error {
	return nil
}

func testIndex(t *testing.T) *vectorindex.Index {
	t.Helper()
	idx, err := vectorindex.Build([]vectorindex.Entry{
		{Vector: []float32{1, 0}, Passage: domain.Passage{SourceFile: "a.pdf", Page: 1, Excerpt: "alpha"}},
		{Vector: []float32{0, 1}, Passage: domain.Passage{SourceFile: "b.pdf", Page: 2, Excerpt: "beta"}},
	})
	require.NoError(t, err)
	return idx
}

func TestIndexLoader_Get(t *testing.T) {
	t.Run("loads once and caches", func(t *testing.T) {
		store := &mockIndexStore{index: testIndex(t)}
		loader := NewIndexLoader(store)

		first, err := loader.Get(context.Background())
		require.NoError(t, err)
		second, err := loader.Get(context.Background())
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int64(1), store.loadCalls.Load())
	})

	t.Run("propagates index not found", func(t *testing.T) {
		store := &mockIndexStore{}
		loader := NewIndexLoader(store)

		_, err := loader.Get(context.Background())
		assert.ErrorIs(t, err, domain.ErrIndexNotFound)
	})

	t.Run("failed load is not cached", func(t *testing.T) {
		store := &mockIndexStore{}
		loader := NewIndexLoader(store)

		_, err := loader.Get(context.Background())
		require.Error(t, err)

		store.index = testIndex(t)
		idx, err := loader.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, idx.Len())
		assert.Equal(t, int64(2), store.loadCalls.Load())
	})

	t.Run("concurrent gets trigger at most one load", func(t *testing.T) {
		store := &mockIndexStore{index: testIndex(t)}
		loader := NewIndexLoader(store)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := loader.Get(context.Background())
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), store.loadCalls.Load())
	})
}

func TestIndexLoader_Invalidate(t *testing.T) {
	store := &mockIndexStore{index: testIndex(t)}
	loader := NewIndexLoader(store)

	_, err := loader.Get(context.Background())
	require.NoError(t, err)

	loader.Invalidate()

	_, err = loader.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), store.loadCalls.Load())

	// Idempotent on an empty cache.
	loader.Invalidate()
	loader.Invalidate()
}
