package domain

const unknownDescription = "Unknown"

// GenProvider identifies a generation backend.
type GenProvider string

// Available generation providers.
const (
	// GenProviderOpenAI is the hosted chat-completion API.
	GenProviderOpenAI GenProvider = "openai"

	// GenProviderOllama is a locally reachable inference server.
	GenProviderOllama GenProvider = "ollama"

	// GenProviderGemini is the alternate hosted API.
	GenProviderGemini GenProvider = "gemini"
)

// IsValid returns true if the provider is recognised.
func (p GenProvider) IsValid() bool {
	switch p {
	case GenProviderOpenAI, GenProviderOllama, GenProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p GenProvider) RequiresAPIKey() bool {
	return p == GenProviderOpenAI || p == GenProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p GenProvider) IsLocal() bool {
	return p == GenProviderOllama
}

// String returns the string representation.
func (p GenProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p GenProvider) Description() string {
	switch p {
	case GenProviderOpenAI:
		return "OpenAI (hosted)"
	case GenProviderOllama:
		return "Ollama (local)"
	case GenProviderGemini:
		return "Gemini (hosted)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key resolved from the environment.
	APIKey string

	// BatchSize is the maximum number of texts per embedding request.
	BatchSize int

	// TimeoutSecs is the network deadline per request.
	TimeoutSecs int
}

// GenerationSettings holds generation provider configuration.
type GenerationSettings struct {
	// Provider selects the active backend. Resolved once at startup.
	Provider GenProvider

	// Model is the generation model name.
	Model string

	// BaseURL is the API endpoint (for Ollama and compatible hosts).
	BaseURL string

	// APIKey is the API key resolved from the environment.
	APIKey string

	// TimeoutSecs is the network deadline per request.
	TimeoutSecs int
}

// IsConfigured returns true if the generation provider is set up.
func (g GenerationSettings) IsConfigured() bool {
	if !g.Provider.IsValid() {
		return false
	}
	if g.Provider.RequiresAPIKey() && g.APIKey == "" {
		return false
	}
	return true
}

// RetrievalSettings holds retrieval behaviour configuration.
type RetrievalSettings struct {
	// TopK is the number of passages retrieved per question.
	TopK int

	// PassageCharLimit bounds each passage's contribution to the prompt.
	PassageCharLimit int
}

// IngestionSettings holds ingestion behaviour configuration.
type IngestionSettings struct {
	// SourceDir is the default directory of source documents.
	SourceDir string

	// ChunkSize is the target passage length in characters.
	ChunkSize int

	// ChunkOverlap is the number of characters repeated between
	// consecutive passages.
	ChunkOverlap int
}
