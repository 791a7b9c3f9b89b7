package services

import (
	"context"
	"sync"

	"github.com/edupath/edubot/internal/core/ports/driven"
	"github.com/edupath/edubot/internal/logger"
	"github.com/edupath/edubot/internal/vectorindex"
)

// IndexLoader is a guarded single-slot cache for the persisted vector index.
//
// It is the only shared mutable resource in the engine: many concurrent
// Ask calls read through it while ingestion wholesale-replaces the artifact
// behind it. The mutex guarantees at most one disk load at a time;
// concurrent callers wait for the in-flight load and then reuse its result.
// Readers capture the returned snapshot for the duration of one request,
// so an invalidation during a request never swaps the index mid-flight.
type IndexLoader struct {
	store driven.IndexStore

	mu     sync.Mutex
	cached *vectorindex.Index
}

// NewIndexLoader creates an index loader backed by the given store.
func NewIndexLoader(store driven.IndexStore) *IndexLoader {
	return &IndexLoader{store: store}
}

// Get returns the cached index, loading it from the store on first use or
// after an invalidation. Propagates domain.ErrIndexNotFound unchanged when
// nothing has been persisted yet.
func (l *IndexLoader) Get(ctx context.Context) (*vectorindex.Index, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached, nil
	}

	logger.Debug("Index cache empty, loading from %s", l.store.Path())
	idx, err := l.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("Index loaded: %d entries, dimension %d", idx.Len(), idx.Dimension())
	l.cached = idx
	return idx, nil
}

// Invalidate clears the cache unconditionally. The next Get reloads from
// disk; requests holding the old snapshot finish against it.
func (l *IndexLoader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cached = nil
	logger.Debug("Index cache invalidated")
}
