package driven

import (
	"context"

	"github.com/edupath/edubot/internal/core/domain"
)

// DocumentSource produces page documents for ingestion.
//
// Text extraction is a collaborator at the engine boundary: the engine only
// consumes the resulting page documents. The local-directory adapter reads
// PDF and plain-text files; an object-storage backed source can implement
// the same port without the engine changing.
type DocumentSource interface {
	// Load reads every supported file under dir and returns one Document
	// per extracted page, plus the number of files read.
	// Returns domain.ErrSourceUnavailable when dir does not exist,
	// domain.ErrInvalidInput when it contains no supported files, and
	// domain.ErrExtractionFailed when text extraction fails.
	Load(ctx context.Context, dir string) ([]domain.Document, int, error)
}
