package services

import (
	"context"
	"fmt"

	"github.com/edupath/edubot/internal/chunker"
	"github.com/edupath/edubot/internal/core/domain"
	"github.com/edupath/edubot/internal/core/ports/driven"
	"github.com/edupath/edubot/internal/core/ports/driving"
	"github.com/edupath/edubot/internal/logger"
	"github.com/edupath/edubot/internal/vectorindex"
)

// Ensure Ingestor implements the interface.
var _ driving.IngestService = (*Ingestor)(nil)

// Ingestor rebuilds the persisted index from a document corpus.
//
// The pipeline is all-or-nothing from the perspective of the persisted
// artifact: any failure before the save completes leaves the previous
// index untouched, and the cache is only invalidated after a successful
// save.
type Ingestor struct {
	source    driven.DocumentSource
	splitter  *chunker.Splitter
	embedding driven.EmbeddingService
	store     driven.IndexStore
	loader    *IndexLoader
	sourceDir string
}

// NewIngestor creates an ingestor.
func NewIngestor(
	source driven.DocumentSource,
	splitter *chunker.Splitter,
	embedding driven.EmbeddingService,
	store driven.IndexStore,
	loader *IndexLoader,
	sourceDir string,
) *Ingestor {
	return &Ingestor{
		source:    source,
		splitter:  splitter,
		embedding: embedding,
		store:     store,
		loader:    loader,
		sourceDir: sourceDir,
	}
}

// Ingest reads every document under dir, chunks and embeds them, and
// wholesale-replaces the persisted index. An empty dir falls back to the
// configured source directory.
func (g *Ingestor) Ingest(ctx context.Context, dir string) (domain.IngestStats, error) {
	if dir == "" {
		dir = g.sourceDir
	}

	logger.Section("Ingestion")
	logger.Info("Source directory: %s", dir)

	docs, files, err := g.source.Load(ctx, dir)
	if err != nil {
		return domain.IngestStats{}, err
	}
	if len(docs) == 0 {
		return domain.IngestStats{}, fmt.Errorf("%w: no text extracted from %s",
			domain.ErrInvalidInput, dir)
	}
	logger.Info("Loaded %d pages from %d files", len(docs), files)

	var chunks []domain.Chunk
	for _, doc := range docs {
		chunks = append(chunks, g.splitter.ChunkDocument(doc)...)
	}
	if len(chunks) == 0 {
		return domain.IngestStats{}, fmt.Errorf("%w: documents produced no chunks",
			domain.ErrInvalidInput)
	}
	logger.Info("Split into %d chunks (size=%d, overlap=%d)",
		len(chunks), g.splitter.ChunkSize(), g.splitter.Overlap())

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}

	vectors, err := g.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		return domain.IngestStats{}, err
	}
	if len(vectors) != len(chunks) {
		return domain.IngestStats{}, fmt.Errorf("%w: got %d vectors for %d chunks",
			domain.ErrEmbeddingFailed, len(vectors), len(chunks))
	}

	entries := make([]vectorindex.Entry, len(chunks))
	for i, ch := range chunks {
		entries[i] = vectorindex.Entry{
			Vector: vectors[i],
			Passage: domain.Passage{
				SourceFile: ch.SourceFile,
				Page:       ch.Page,
				Excerpt:    ch.Text,
			},
		}
	}

	idx, err := vectorindex.Build(entries)
	if err != nil {
		return domain.IngestStats{}, err
	}

	if err := g.store.Save(ctx, idx); err != nil {
		return domain.IngestStats{}, fmt.Errorf("persist index: %w", err)
	}

	// Only a fully persisted index invalidates the cache.
	g.loader.Invalidate()

	stats := domain.IngestStats{
		FilesProcessed: files,
		TotalPages:     len(docs),
		TotalChunks:    len(chunks),
		IndexPath:      g.store.Path(),
	}
	logger.Info("Ingestion complete: %d files, %d pages, %d chunks",
		stats.FilesProcessed, stats.TotalPages, stats.TotalChunks)
	return stats, nil
}

// InvalidateCache clears the in-process index cache. Idempotent.
func (g *Ingestor) InvalidateCache() {
	g.loader.Invalidate()
}
