package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edupath/edubot/internal/core/domain"
	"github.com/edupath/edubot/internal/core/ports/driven"
	"github.com/edupath/edubot/internal/core/ports/driving"
	"github.com/edupath/edubot/internal/logger"
)

// Ensure AnswerEngine implements the interface.
var _ driving.AnswerService = (*AnswerEngine)(nil)

// SourceExcerptCharLimit bounds each cited source's excerpt in the
// answer. Sources are a preview of where the answer came from, not the
// full passage text.
const SourceExcerptCharLimit = 300

// AnswerEngine is the question-answering facade: retrieve, assemble,
// generate, cite. Construction wires the active generation backend once;
// nothing here branches on provider identity.
type AnswerEngine struct {
	retriever  *Retriever
	assembler  *PromptAssembler
	generation driven.GenerationService
	topK       int
}

// NewAnswerEngine creates an answer engine.
// topK <= 0 falls back to the default.
func NewAnswerEngine(
	retriever *Retriever,
	assembler *PromptAssembler,
	generation driven.GenerationService,
	topK int,
) *AnswerEngine {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerEngine{
		retriever:  retriever,
		assembler:  assembler,
		generation: generation,
		topK:       topK,
	}
}

// Ask answers a question against the indexed corpus.
// The pipeline short-circuits on the first failure; no partial answer is
// ever returned.
func (e *AnswerEngine) Ask(ctx context.Context, question string) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("%w: question must not be empty", domain.ErrInvalidInput)
	}

	logger.Section("Answer Pipeline")
	logger.Debug("Question: %q", question)

	passages, err := e.retriever.Retrieve(ctx, question, e.topK)
	if err != nil {
		return domain.Answer{}, err
	}
	logger.Debug("Retrieved %d passages", len(passages))

	prompt := e.assembler.Assemble(passages, question)
	logger.Debug("Assembled prompt (%d chars)", len(prompt))

	text, err := e.generation.Generate(ctx, prompt)
	if err != nil {
		return domain.Answer{}, err
	}
	logger.Info("Answer generated by %s (%d chars)", e.generation.ModelName(), len(text))

	sources := make([]domain.Passage, len(passages))
	for i, p := range passages {
		sources[i] = p.Passage
		sources[i].Excerpt = truncate(sources[i].Excerpt, SourceExcerptCharLimit)
	}

	return domain.Answer{
		Text:       text,
		Sources:    sources,
		ModelUsed:  e.generation.ModelName(),
		NumSources: len(sources),
	}, nil
}
