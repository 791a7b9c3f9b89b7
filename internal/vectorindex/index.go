// Package vectorindex provides a flat, exhaustively searched vector index.
//
// Exhaustive L2 search is adequate at corpus sizes in the thousands of
// passages. The index is immutable after Build and is wholesale-replaced
// on re-ingestion; callers that need an approximate-NN structure later can
// swap the implementation behind the same surface.
package vectorindex

import (
	"fmt"
	"math"
	"sort"

	"github.com/edupath/edubot/internal/core/domain"
)

// Entry pairs a passage vector with its metadata.
type Entry struct {
	// Vector is the embedding of the passage text.
	Vector []float32

	// Passage is the positional metadata for the vector.
	Passage domain.Passage
}

// Index is an immutable flat collection of entries with a fixed dimension.
type Index struct {
	entries   []Entry
	dimension int
}

// Build constructs an index over the given entries.
// Every vector must have the same length; a mismatch fails the build with
// domain.ErrDimensionMismatch and no index is produced.
func Build(entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries to index", domain.ErrInvalidInput)
	}

	dimension := len(entries[0].Vector)
	if dimension == 0 {
		return nil, fmt.Errorf("%w: zero-length vector at entry 0", domain.ErrDimensionMismatch)
	}
	for i, e := range entries {
		if len(e.Vector) != dimension {
			return nil, fmt.Errorf("%w: entry %d has dimension %d, want %d",
				domain.ErrDimensionMismatch, i, len(e.Vector), dimension)
		}
	}

	idx := &Index{
		entries:   make([]Entry, len(entries)),
		dimension: dimension,
	}
	copy(idx.entries, entries)
	return idx, nil
}

// Search returns the k entries with the smallest L2 distance to query,
// ranked by ascending distance with ties broken by insertion order.
// An index with fewer than k entries returns all of them.
func (x *Index) Search(query []float32, k int) ([]domain.ScoredPassage, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidInput, k)
	}
	if len(query) != x.dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrDimensionMismatch, len(query), x.dimension)
	}

	type hit struct {
		pos  int
		dist float64
	}
	hits := make([]hit, len(x.entries))
	for i, e := range x.entries {
		hits[i] = hit{pos: i, dist: l2Distance(query, e.Vector)}
	}

	// SliceStable keeps insertion order for equal distances.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	if k > len(hits) {
		k = len(hits)
	}
	results := make([]domain.ScoredPassage, k)
	for i := 0; i < k; i++ {
		results[i] = domain.ScoredPassage{
			Passage: x.entries[hits[i].pos].Passage,
			Score:   hits[i].dist,
		}
	}
	return results, nil
}

// Dimension returns the vector length shared by all entries.
func (x *Index) Dimension() int {
	return x.dimension
}

// Len returns the number of entries.
func (x *Index) Len() int {
	return len(x.entries)
}

// Entries returns the entries in insertion order.
// The returned slice is shared; callers must not mutate it.
func (x *Index) Entries() []Entry {
	return x.entries
}

// l2Distance computes the Euclidean distance between two equal-length vectors.
func l2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
