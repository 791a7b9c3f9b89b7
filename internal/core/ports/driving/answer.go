package driving

import (
	"context"

	"github.com/edupath/edubot/internal/core/domain"
)

// AnswerService answers natural-language questions against the indexed corpus.
type AnswerService interface {
	// Ask retrieves the most relevant passages for the question and
	// generates a cited answer. Empty or whitespace-only questions fail
	// with domain.ErrInvalidInput before any I/O; domain.ErrIndexNotFound
	// passes through when no corpus has been ingested yet.
	Ask(ctx context.Context, question string) (domain.Answer, error)
}
