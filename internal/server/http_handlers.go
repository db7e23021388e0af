package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"resumatch/internal/embedding"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler provides a health check endpoint including embedding model
// status and circuit breaker state
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "resumatch",
		"version": s.Version,
	}

	// Check embedding model availability
	embeddingStatus := s.checkEmbeddingHealth()
	response["embedding"] = embeddingStatus

	// Check circuit breaker status
	response["circuit_breaker"] = s.checkCircuitBreakerHealth()

	// Job catalog size
	response["jobs"] = map[string]any{
		"count": len(s.Store.List()),
	}

	// Keyword-only mode is a valid configuration, not a degraded state.
	// Only a configured provider that cannot be reached degrades health.
	if mode, ok := embeddingStatus["mode"]; ok && mode == "semantic" {
		if available, ok := embeddingStatus["available"].(bool); ok && !available {
			response["status"] = "degraded"
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkEmbeddingHealth reports the state of the configured embedding provider
func (s *Server) checkEmbeddingHealth() map[string]any {
	if s.Embeddings == nil || !s.Embeddings.Enabled() {
		return map[string]any{
			"mode":    "keyword-only",
			"message": "No embedding provider configured, semantic matching disabled",
		}
	}

	// Use configurable health check timeout
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	status := map[string]any{
		"mode":     "semantic",
		"provider": s.AppConfig.Embedding.Provider,
	}

	if info, ok := s.Embeddings.GetModelInfo(ctx).(*embedding.ModelInfo); ok {
		status["model"] = info.Name
		status["available"] = info.Available
		if info.Error != "" {
			status["error"] = info.Error
		}
	} else {
		status["available"] = false
		status["error"] = "model info unavailable"
	}

	return status
}

// checkCircuitBreakerHealth reports embedding circuit breaker state
func (s *Server) checkCircuitBreakerHealth() map[string]any {
	if s.Embeddings == nil || !s.Embeddings.Enabled() {
		return map[string]any{"enabled": false}
	}
	return s.Embeddings.GetCircuitBreakerStats()
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "resumatch",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"jobs": map[string]any{
			"count": len(s.Store.List()),
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
