// Package chunker splits page text into overlapping fixed-size passages.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/edupath/edubot/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// separators is the prioritized boundary hierarchy: paragraph break,
// line break, space, then a hard character cut.
var separators = []string{"\n\n", "\n", " "}

// Splitter cuts text into chunks of at most chunkSize characters,
// preferring natural boundaries and repeating overlap characters between
// consecutive chunks. Splitting is deterministic: the same text and
// parameters always yield the same chunk sequence.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must leave room for the window to advance.
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkSize returns the configured chunk size.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split cuts text into overlapping pieces. Every piece is a non-empty
// substring of text no longer than the chunk size; text shorter than the
// chunk size yields exactly one piece. Empty text yields none.
//
// Sizes and offsets are counted in characters, never bytes, so multi-byte
// runes are never cut apart.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= s.chunkSize {
		return []string{text}
	}

	estimated := (len(runes) / (s.chunkSize - s.overlap)) + 1
	pieces := make([]string, 0, estimated)

	start := 0
	for start < len(runes) {
		end := start + s.chunkSize
		if end >= len(runes) {
			pieces = append(pieces, string(runes[start:]))
			break
		}

		end = s.cutPoint(runes, start, end)
		pieces = append(pieces, string(runes[start:end]))

		next := end - s.overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return pieces
}

// cutPoint finds the best boundary in runes[start:end], walking the
// separator hierarchy. A boundary in the first half of the window is
// rejected so chunks never degenerate; with no separator at all the cut
// falls back to the hard character limit.
func (s *Splitter) cutPoint(runes []rune, start, end int) int {
	window := string(runes[start:end])
	minCut := (end - start) / 2

	for _, sep := range separators {
		if i := strings.LastIndex(window, sep); i >= 0 {
			// Separators are ASCII, so their byte length equals their
			// rune length; only the prefix needs recounting.
			at := utf8.RuneCountInString(window[:i])
			if at > minCut {
				// Keep the separator inside the current chunk so
				// concatenation reconstructs the original text.
				return start + at + len(sep)
			}
		}
	}
	return end
}

// ChunkDocument splits a page document into chunks with metadata.
func (s *Splitter) ChunkDocument(doc domain.Document) []domain.Chunk {
	pieces := s.Split(doc.Text)
	if len(pieces) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			Text:       piece,
			SourceFile: doc.SourceFile,
			Page:       doc.Page,
			Seq:        i,
		}
	}
	return chunks
}
