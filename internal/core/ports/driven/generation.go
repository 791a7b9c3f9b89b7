package driven

import "context"

// GenerationService turns an assembled prompt into natural-language text.
//
// The three interchangeable backends (OpenAI, Ollama, Gemini) all satisfy
// this capability set; the active one is constructed once at startup by
// the ai factory and nothing else branches on provider identity.
type GenerationService interface {
	// Generate produces a completion for the given prompt.
	// Connection errors, timeouts and non-2xx responses wrap
	// domain.ErrGenerationFailed, carrying the backend's message.
	Generate(ctx context.Context, prompt string) (string, error)

	// Chat produces a completion for a structured message list.
	// Backends without a native chat shape flatten the messages into
	// a single text block before sending.
	Chat(ctx context.Context, messages []ChatMessage) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}
