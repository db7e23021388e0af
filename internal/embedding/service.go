package embedding

import (
	"context"
	"fmt"

	"resumatch/internal/config"
	"resumatch/internal/errors"
)

// Service owns the configured embedding provider. A nil Provider means the
// application runs in keyword-only matching mode.
type Service struct {
	Provider Embedder // Exported for access from server package
	config   *config.EmbeddingConfig
	logger   *errors.Logger
}

// NewService creates an embedding service from configuration. Provider
// "none" (or empty) disables semantic matching entirely.
func NewService(cfg *config.EmbeddingConfig, logger *errors.Logger) (*Service, error) {
	logger.Debug("Initializing embedding service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries)

	var provider Embedder
	var err error

	switch cfg.Provider {
	case "", "none":
		logger.Info("Embedding provider disabled, using keyword-based matching only")
	case "gemini":
		provider, err = NewGeminiEmbedder(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported embedding provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewEmbeddingError(errors.ErrCodeEmbeddingFailed,
			"Failed to create embedding provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Enabled reports whether an embedding provider is configured.
func (s *Service) Enabled() bool {
	return s.Provider != nil
}

// GetModelInfo returns model availability details for health checks.
func (s *Service) GetModelInfo(ctx context.Context) any {
	if s.Provider == nil {
		return &ModelInfo{Name: "none", Available: false, Error: "embedding provider disabled"}
	}
	return s.Provider.GetModelInfo(ctx)
}

// GetCircuitBreakerStats exposes breaker state for the stats endpoint.
func (s *Service) GetCircuitBreakerStats() map[string]any {
	if g, ok := s.Provider.(*GeminiEmbedder); ok {
		return g.GetCircuitBreakerStats()
	}
	return map[string]any{"enabled": false}
}

// Close releases provider resources.
func (s *Service) Close() error {
	if s.Provider == nil {
		return nil
	}
	return s.Provider.Close()
}
