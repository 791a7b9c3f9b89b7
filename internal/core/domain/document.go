package domain

// Document represents one extracted page of a source file.
// It is the unit produced by a DocumentSource and consumed by the chunker.
// Documents are immutable once read.
type Document struct {
	// ID is the unique identifier for the page.
	ID string

	// SourceFile is the base name of the file the page came from.
	SourceFile string

	// Page is the 1-based page number within the source file.
	// Plain-text files always report page 1.
	Page int

	// Text is the extracted page text.
	Text string
}

// Chunk is a bounded contiguous passage derived from a Document.
// Chunks exist only during ingestion; after indexing, only the
// passage metadata and its vector survive.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Text is the passage content.
	Text string

	// SourceFile is the base name of the originating file.
	SourceFile string

	// Page is the page the passage was cut from.
	Page int

	// Seq is the ordinal position of the chunk within its page.
	Seq int
}

// Passage is the metadata half of an index entry: everything the
// engine needs to attribute a retrieved vector back to its source.
type Passage struct {
	// SourceFile is the base name of the originating file.
	SourceFile string `json:"source_file"`

	// Page is the page number within the source file.
	Page int `json:"page"`

	// Excerpt is the indexed passage text.
	Excerpt string `json:"content"`
}

// ScoredPassage is a single retrieval hit.
type ScoredPassage struct {
	// Passage is the matched passage metadata.
	Passage Passage

	// Score is the L2 distance to the query vector (smaller is closer).
	Score float64
}

// IngestStats summarises a completed ingestion run.
type IngestStats struct {
	// FilesProcessed is the number of source files read.
	FilesProcessed int `json:"files_processed"`

	// TotalPages is the number of pages extracted across all files.
	TotalPages int `json:"total_pages"`

	// TotalChunks is the number of passages indexed.
	TotalChunks int `json:"total_chunks"`

	// IndexPath is the directory the index was persisted to.
	IndexPath string `json:"index_path"`
}
