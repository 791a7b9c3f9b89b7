package cli

import (
	"fmt"

	"github.com/edupath/edubot/internal/adapters/driven/ai"
	configfile "github.com/edupath/edubot/internal/adapters/driven/config/file"
	docfile "github.com/edupath/edubot/internal/adapters/driven/docsource/file"
	"github.com/edupath/edubot/internal/adapters/driven/storage/sqlite"
	"github.com/edupath/edubot/internal/chunker"
	"github.com/edupath/edubot/internal/core/ports/driving"
	"github.com/edupath/edubot/internal/core/services"
)

// Services injected into commands. Populated by initServices; tests swap
// in mocks directly.
var (
	answerService driving.AnswerService
	ingestService driving.IngestService
	appConfig     *configfile.Config
	closers       []func() error
)

// initServices wires the full pipeline from configuration.
// Safe to call more than once; already-populated services are kept.
func initServices() error {
	if answerService != nil && ingestService != nil {
		return nil
	}

	path := configPath
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := configfile.Load(path)
	if err != nil {
		return err
	}
	appConfig = cfg

	store, err := sqlite.NewStore(cfg.Index.Dir)
	if err != nil {
		return fmt.Errorf("opening index store: %w", err)
	}
	closers = append(closers, store.Close)

	embeddingSvc, err := ai.CreateEmbeddingService(cfg.EmbeddingSettings())
	if err != nil {
		return fmt.Errorf("creating embedding service: %w", err)
	}
	closers = append(closers, embeddingSvc.Close)

	generationSvc, err := ai.CreateGenerationService(cfg.GenerationSettings())
	if err != nil {
		return fmt.Errorf("creating generation service: %w", err)
	}
	closers = append(closers, generationSvc.Close)

	promptStore, err := configfile.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("creating prompt store: %w", err)
	}

	retrieval := cfg.RetrievalSettings()
	ingestion := cfg.IngestionSettings()

	loader := services.NewIndexLoader(store)

	assembler := services.NewPromptAssembler(retrieval.PassageCharLimit)
	assembler.SetPromptStore(promptStore)

	retriever := services.NewRetriever(embeddingSvc, loader)
	answerService = services.NewAnswerEngine(retriever, assembler, generationSvc, retrieval.TopK)

	splitter := chunker.New(
		chunker.WithChunkSize(ingestion.ChunkSize),
		chunker.WithOverlap(ingestion.ChunkOverlap),
	)
	ingestService = services.NewIngestor(
		docfile.NewSource(),
		splitter,
		embeddingSvc,
		store,
		loader,
		ingestion.SourceDir,
	)

	return nil
}

// closeServices releases everything initServices opened.
func closeServices() {
	for _, c := range closers {
		c() //nolint:errcheck // best-effort cleanup on exit
	}
	closers = nil
}
