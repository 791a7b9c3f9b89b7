package driving

import (
	"context"

	"github.com/edupath/edubot/internal/core/domain"
)

// IngestService rebuilds the searchable index from a document corpus.
type IngestService interface {
	// Ingest reads every document under dir (falling back to the
	// configured source directory when dir is empty), chunks and embeds
	// them, and wholesale-replaces the persisted index. All-or-nothing:
	// a failure before the save completes leaves the previous index
	// untouched.
	Ingest(ctx context.Context, dir string) (domain.IngestStats, error)

	// InvalidateCache clears the in-process index cache so the next
	// question reloads from disk. Idempotent.
	InvalidateCache()
}
