package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Embeddings are treated as an external black-box service reachable over
// the network; the engine never trains or inspects the model itself.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Any OpenAI-compatible inference server
type EmbeddingService interface {
	// EmbedBatch generates embeddings for multiple texts, preserving
	// input order with len(output) == len(input). A failure on any part
	// of the batch fails the whole call: index alignment between text
	// and vector is an invariant callers depend on. Failures wrap
	// domain.ErrEmbeddingFailed.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536).
	// This must match the persisted index dimension.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
