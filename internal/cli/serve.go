package cli

import (
	"fmt"

	"resumatch/internal/embedding"
	"resumatch/internal/ingest"
	"resumatch/internal/jobs"
	"resumatch/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume analysis and job matching",
	Long: `Start an HTTP server that provides REST API endpoints for resume
analysis and job matching.

Available endpoints:
- POST /api/v1/analyze: Analyze an uploaded resume (multipart upload)
- POST /api/v1/match: Match extracted resume text against job postings
- GET/POST /api/v1/jobs: List, search or add job postings
- GET/PUT/DELETE /api/v1/jobs/{id}: Manage a single posting
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server
- Use --cert-file and --key-file for TLS certificates`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Apply flag overrides on top of the loaded configuration
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetString("port")
	}
	if flags.Changed("host") {
		cfg.Server.Host, _ = flags.GetString("host")
	}
	if flags.Changed("tls-mode") {
		cfg.Server.TLS.Mode, _ = flags.GetString("tls-mode")
	}
	if flags.Changed("cert-file") {
		cfg.Server.TLS.CertFile, _ = flags.GetString("cert-file")
	}
	if flags.Changed("key-file") {
		cfg.Server.TLS.KeyFile, _ = flags.GetString("key-file")
	}

	extractor, err := ingest.NewExtractor(cmd.Context(), logger)
	if err != nil {
		return fmt.Errorf("failed to create text extractor: %w", err)
	}

	embedSvc, err := embedding.NewService(&cfg.Embedding, logger)
	if err != nil {
		return fmt.Errorf("failed to create embedding service: %w", err)
	}

	store, err := buildJobStore(cfg, logger)
	if err != nil {
		return err
	}

	// Reload the catalog on file changes when configured
	if cfg.Jobs.CatalogFile != "" && cfg.Jobs.Watch {
		watcher, err := jobs.NewCatalogWatcher(store, cfg.Jobs.CatalogFile, logger)
		if err != nil {
			return fmt.Errorf("failed to watch job catalog: %w", err)
		}
		watcher.Start(cmd.Context())
		logger.Info("Watching job catalog for changes", "file", cfg.Jobs.CatalogFile)
	}

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	deps := server.Dependencies{
		Extractor:  extractor,
		Embeddings: embedSvc,
		Store:      store,
	}
	return server.NewServer(cfg, serverCfg, deps, logger).Start()
}
