package cli

import (
	"context"
	"fmt"

	"resumatch/internal/analysis"
	"resumatch/internal/config"
	"resumatch/internal/embedding"
	"resumatch/internal/errors"
	"resumatch/internal/ingest"
	"resumatch/internal/jobs"
	"resumatch/internal/match"
)

// buildJobStore creates the job catalog store, loading the configured
// catalog file when one is set and falling back to the built-in demo jobs.
func buildJobStore(cfg *config.Config, logger *errors.Logger) (*jobs.MemoryStore, error) {
	if cfg.Jobs.CatalogFile == "" {
		return jobs.NewMemoryStore(logger), nil
	}

	postings, err := jobs.LoadCatalogFile(cfg.Jobs.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load job catalog: %w", err)
	}
	logger.Info("Loaded job catalog", "file", cfg.Jobs.CatalogFile, "jobs", len(postings))
	return jobs.NewMemoryStoreWith(postings, logger), nil
}

// buildAnalysisService assembles the full analysis pipeline for CLI
// commands. The returned cleanup function releases the embedding provider.
func buildAnalysisService(ctx context.Context, cfg *config.Config, logger *errors.Logger) (*analysis.Service, func(), error) {
	extractor, err := ingest.NewExtractor(ctx, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create text extractor: %w", err)
	}

	embedSvc, err := embedding.NewService(&cfg.Embedding, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedding service: %w", err)
	}

	store, err := buildJobStore(cfg, logger)
	if err != nil {
		_ = embedSvc.Close()
		return nil, nil, err
	}

	matcher := match.NewMatcher(embedSvc.Provider, logger)
	svc := analysis.NewService(extractor, matcher, store, logger, nil)

	cleanup := func() {
		if err := embedSvc.Close(); err != nil {
			logger.Warn("Failed to close embedding service", "error", err.Error())
		}
	}
	return svc, cleanup, nil
}
