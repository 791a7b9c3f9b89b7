package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. Adapters wrap them
// with context; services pass them through unchanged so the transport
// layer can map each one to a user-visible status.
var (
	// ErrInvalidInput indicates malformed or invalid caller input.
	// Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexNotFound indicates no persisted index exists yet.
	// Actionable: run ingestion first.
	ErrIndexNotFound = errors.New("index not found")

	// ErrEmbeddingFailed indicates the embedding backend returned an
	// error or was unreachable. Carries the backend message via wrapping.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrGenerationFailed indicates the generation backend returned an
	// error or was unreachable. Carries the backend message via wrapping.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrDimensionMismatch indicates vectors of inconsistent length
	// during an index build or search. Fatal to that run; the previously
	// persisted index stays authoritative.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrSourceUnavailable indicates the document source cannot be reached.
	ErrSourceUnavailable = errors.New("document source unavailable")

	// ErrExtractionFailed indicates text extraction from a source file failed.
	ErrExtractionFailed = errors.New("extraction failed")
)
