// Package file provides file-based configuration and prompt stores.
//
// Configuration is a TOML file read once at startup; API keys are never
// stored in the file itself but resolved from the environment via the
// api_key_env fields.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/edupath/edubot/internal/core/domain"
)

// Default configuration values.
const (
	defaultEmbeddingModel     = "text-embedding-3-small"
	defaultEmbeddingKeyEnv    = "OPENAI_API_KEY"
	defaultGenerationProvider = "openai"
	defaultChunkSize          = 1000
	defaultChunkOverlap       = 200
	defaultTopK               = 4
	defaultPassageCharLimit   = 500
	defaultServerAddr         = ":8000"
)

// Config is the full application configuration.
type Config struct {
	Embedding  EmbeddingConfig  `toml:"embedding"`
	Generation GenerationConfig `toml:"generation"`
	Ingestion  IngestionConfig  `toml:"ingestion"`
	Retrieval  RetrievalConfig  `toml:"retrieval"`
	Index      IndexConfig      `toml:"index"`
	Server     ServerConfig     `toml:"server"`
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	Model       string `toml:"model"`
	BaseURL     string `toml:"base_url"`
	APIKeyEnv   string `toml:"api_key_env"`
	BatchSize   int    `toml:"batch_size"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// GenerationConfig configures the generation provider.
type GenerationConfig struct {
	Provider    string `toml:"provider"`
	Model       string `toml:"model"`
	BaseURL     string `toml:"base_url"`
	APIKeyEnv   string `toml:"api_key_env"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// IngestionConfig configures document ingestion.
type IngestionConfig struct {
	SourceDir    string `toml:"source_dir"`
	ChunkSize    int    `toml:"chunk_size"`
	ChunkOverlap int    `toml:"chunk_overlap"`
}

// RetrievalConfig configures passage retrieval.
type RetrievalConfig struct {
	TopK             int `toml:"top_k"`
	PassageCharLimit int `toml:"passage_char_limit"`
}

// IndexConfig configures index persistence.
type IndexConfig struct {
	Dir string `toml:"dir"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultPath returns the default config file location (~/.edubot/config.toml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".edubot", "config.toml"), nil
}

// Load reads the TOML config at path and applies defaults.
// A missing file is not an error; defaults apply throughout.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills in zero-valued fields.
func (c *Config) applyDefaults() {
	if c.Embedding.Model == "" {
		c.Embedding.Model = defaultEmbeddingModel
	}
	if c.Embedding.APIKeyEnv == "" {
		c.Embedding.APIKeyEnv = defaultEmbeddingKeyEnv
	}
	if c.Generation.Provider == "" {
		c.Generation.Provider = defaultGenerationProvider
	}
	if c.Generation.APIKeyEnv == "" {
		switch domain.GenProvider(c.Generation.Provider) {
		case domain.GenProviderGemini:
			c.Generation.APIKeyEnv = "GEMINI_API_KEY"
		case domain.GenProviderOpenAI:
			c.Generation.APIKeyEnv = "OPENAI_API_KEY"
		}
	}
	if c.Ingestion.ChunkSize == 0 {
		c.Ingestion.ChunkSize = defaultChunkSize
	}
	if c.Ingestion.ChunkOverlap == 0 {
		c.Ingestion.ChunkOverlap = defaultChunkOverlap
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = defaultTopK
	}
	if c.Retrieval.PassageCharLimit == 0 {
		c.Retrieval.PassageCharLimit = defaultPassageCharLimit
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultServerAddr
	}
}

// EmbeddingSettings resolves the embedding configuration into domain settings.
// The API key is read from the environment variable named by api_key_env.
func (c *Config) EmbeddingSettings() domain.EmbeddingSettings {
	return domain.EmbeddingSettings{
		Model:       c.Embedding.Model,
		BaseURL:     c.Embedding.BaseURL,
		APIKey:      os.Getenv(c.Embedding.APIKeyEnv),
		BatchSize:   c.Embedding.BatchSize,
		TimeoutSecs: c.Embedding.TimeoutSecs,
	}
}

// GenerationSettings resolves the generation configuration into domain settings.
func (c *Config) GenerationSettings() domain.GenerationSettings {
	var apiKey string
	if c.Generation.APIKeyEnv != "" {
		apiKey = os.Getenv(c.Generation.APIKeyEnv)
	}
	return domain.GenerationSettings{
		Provider:    domain.GenProvider(c.Generation.Provider),
		Model:       c.Generation.Model,
		BaseURL:     c.Generation.BaseURL,
		APIKey:      apiKey,
		TimeoutSecs: c.Generation.TimeoutSecs,
	}
}

// RetrievalSettings returns the retrieval configuration as domain settings.
func (c *Config) RetrievalSettings() domain.RetrievalSettings {
	return domain.RetrievalSettings{
		TopK:             c.Retrieval.TopK,
		PassageCharLimit: c.Retrieval.PassageCharLimit,
	}
}

// IngestionSettings returns the ingestion configuration as domain settings.
func (c *Config) IngestionSettings() domain.IngestionSettings {
	return domain.IngestionSettings{
		SourceDir:    c.Ingestion.SourceDir,
		ChunkSize:    c.Ingestion.ChunkSize,
		ChunkOverlap: c.Ingestion.ChunkOverlap,
	}
}
