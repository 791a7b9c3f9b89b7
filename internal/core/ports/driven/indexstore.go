package driven

import (
	"context"

	"github.com/edupath/edubot/internal/vectorindex"
)

// IndexStore persists the vector index to durable storage and restores it.
//
// The persisted layout is a directory holding the serialized vector matrix
// and a parallel metadata store; both are written and read together, and
// entry order must survive the round trip because metadata is positionally
// aligned with vectors.
type IndexStore interface {
	// Save persists the full index, replacing any previous artifact only
	// once the write has fully succeeded. A failed save leaves the
	// previous artifact untouched.
	Save(ctx context.Context, index *vectorindex.Index) error

	// Load restores the persisted index. Returns domain.ErrIndexNotFound
	// when nothing has been persisted yet, and rejects a directory where
	// vector count and metadata count disagree.
	Load(ctx context.Context) (*vectorindex.Index, error)

	// Path returns the directory the index is persisted in.
	Path() string

	// Close releases resources.
	Close() error
}
