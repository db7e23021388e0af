package embedding

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"resumatch/internal/config"
	rmErrors "resumatch/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiEmbedder implements Embedder using the Gemini embedding models
type GeminiEmbedder struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.EmbeddingConfig
	circuitBreaker *EmbedCircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *rmErrors.Logger
}

// Ensure GeminiEmbedder implements Embedder
var _ Embedder = (*GeminiEmbedder)(nil)

// modelCheckTimeout bounds availability probes against the model endpoint.
const modelCheckTimeout = 10 * time.Second

// NewGeminiEmbedder creates a new Gemini embedding provider
func NewGeminiEmbedder(cfg *config.EmbeddingConfig, logger *rmErrors.Logger) (*GeminiEmbedder, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, rmErrors.NewEmbeddingError(rmErrors.ErrCodeEmbeddingFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiEmbedder{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		circuitBreaker: NewEmbedCircuitBreaker(cfg, logger),
		modelBreaker:   NewModelCircuitBreaker(cfg, logger),
		logger:         logger,
	}, nil
}

// EmbedTexts implements Embedder. All texts go out in a single request so a
// resume/job pair is always embedded by the same model revision.
func (g *GeminiEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	tracer := otel.Tracer("resumatch.embedding.gemini")
	ctx, span := tracer.Start(ctx, "gemini.embed_texts")
	defer span.End()

	span.SetAttributes(
		attribute.String("embedding.provider", "gemini"),
		attribute.String("embedding.model", g.config.Model),
		attribute.Int("embedding.batch_size", len(texts)),
	)

	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.EmbedContentResponse, error) {
		return g.executeWithRetry(ctx, "embed_texts", func() (*genai.EmbedContentResponse, error) {
			return g.client.Models.EmbedContent(ctx, g.config.Model, contents, &genai.EmbedContentConfig{})
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, rmErrors.NewEmbeddingError(rmErrors.ErrCodeEmbeddingFailed,
			"Failed to embed texts", err)
	}

	if len(result.Embeddings) != len(texts) {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, rmErrors.NewEmbeddingError(rmErrors.ErrCodeEmbeddingFailed,
			fmt.Sprintf("Expected %d embeddings, got %d", len(texts), len(result.Embeddings)), nil)
	}

	vectors := make([][]float64, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		vec := make([]float64, len(emb.Values))
		for j, v := range emb.Values {
			vec[j] = float64(v)
		}
		vectors[i] = vec
	}

	span.SetAttributes(attribute.Bool("success", true))
	if len(vectors) > 0 {
		span.SetAttributes(attribute.Int("embedding.dimensions", len(vectors[0])))
	}

	return vectors, nil
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiEmbedder) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an embedding request with retry logic and exponential backoff
func (g *GeminiEmbedder) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.EmbedContentResponse, error)) (*genai.EmbedContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying embedding operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("Embedding operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "Embedding operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiEmbedder) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true // Retry on timeouts
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiEmbedder) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"embed_operations": g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	embedHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = embedHealthy && modelHealthy

	return stats
}

// Close implements Embedder
func (g *GeminiEmbedder) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}
