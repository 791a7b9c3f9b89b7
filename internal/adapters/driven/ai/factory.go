// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	openaiembed "github.com/edupath/edubot/internal/adapters/driven/embedding/openai"
	geminillm "github.com/edupath/edubot/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/edupath/edubot/internal/adapters/driven/llm/ollama"
	openaillm "github.com/edupath/edubot/internal/adapters/driven/llm/openai"
	"github.com/edupath/edubot/internal/core/domain"
	"github.com/edupath/edubot/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding service from settings.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("embedding API key is not set")
	}

	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:    settings.APIKey,
		BaseURL:   settings.BaseURL,
		Model:     settings.Model,
		BatchSize: settings.BatchSize,
		Timeout:   time.Duration(settings.TimeoutSecs) * time.Second,
	})
}

// CreateGenerationService creates the configured generation backend.
// Exactly one backend is constructed; callers hold it behind the
// driven.GenerationService interface and never branch on provider again.
func CreateGenerationService(settings domain.GenerationSettings) (driven.GenerationService, error) {
	if !settings.Provider.IsValid() {
		return nil, fmt.Errorf("unsupported generation provider: %q", settings.Provider)
	}
	if settings.Provider.RequiresAPIKey() && settings.APIKey == "" {
		return nil, fmt.Errorf("generation provider %s requires an API key", settings.Provider)
	}

	timeout := time.Duration(settings.TimeoutSecs) * time.Second

	switch settings.Provider {
	case domain.GenProviderOpenAI:
		return openaillm.NewGenerationService(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	case domain.GenProviderOllama:
		return ollamallm.NewGenerationService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		}), nil

	case domain.GenProviderGemini:
		return geminillm.NewGenerationService(geminillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	default:
		return nil, fmt.Errorf("unsupported generation provider: %q", settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("embedding service unreachable: %w", err)
	}
	return svc, nil
}

// CreateAndValidateGenerationService creates a generation service and validates connectivity.
func CreateAndValidateGenerationService(settings domain.GenerationSettings) (driven.GenerationService, error) {
	svc, err := CreateGenerationService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("generation provider %s unreachable: %w", settings.Provider, err)
	}
	return svc, nil
}
