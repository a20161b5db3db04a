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

	"resumatch/internal/ai"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler provides a comprehensive health check endpoint including AI model status
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

	// Report the active skill vocabulary
	response["vocabulary"] = map[string]any{
		"skill_count": len(s.Vocabulary.Skills()),
		"file_backed": s.Vocabulary.Path() != "",
	}

	// AI is optional: lexical matching and static rewrites work without it
	aiConfigured := s.AppConfig.AI.APIKey != "" || s.AppConfig.AI.Rewrite.APIKey != "" || s.AppConfig.AI.Embed.APIKey != ""
	overallHealthy := true

	if aiConfigured {
		aiStatus := s.checkAIModelsHealth()
		response["ai_models"] = aiStatus

		circuitBreakerStatus := s.checkCircuitBreakerHealth()
		response["circuit_breakers"] = circuitBreakerStatus

		for _, modelStatus := range aiStatus {
			if modelInfo, ok := modelStatus.(map[string]any); ok {
				if available, exists := modelInfo["available"]; exists {
					if avail, ok := available.(bool); ok && !avail {
						overallHealthy = false
						break
					}
				}
			}
		}
	} else {
		response["ai_models"] = map[string]any{
			"configured": false,
			"message":    "No AI API key configured; semantic matching and generative rewrites are unavailable",
		}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkAIModelsHealth checks the health of the AI models used by the rewrite and embed operations
func (s *Server) checkAIModelsHealth() map[string]any {
	// Use configurable health check timeout
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	aiStatus := make(map[string]any)

	// Check rewrite service model
	rewriteConfig := s.AppConfig.GetRewriteConfig()
	if rewriteService, err := ai.NewService(&rewriteConfig, "rewrite", s.Logger); err == nil {
		modelInfo := rewriteService.GetModelInfo(ctx)
		aiStatus["rewrite"] = modelInfo
	} else {
		aiStatus["rewrite"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create rewrite service: %v", err),
		}
	}

	// Check embed service model
	embedConfig := s.AppConfig.GetEmbedConfig()
	if embedService, err := ai.NewService(&embedConfig, "embed", s.Logger); err == nil {
		modelInfo := embedService.GetModelInfo(ctx)
		aiStatus["embed"] = modelInfo
	} else {
		aiStatus["embed"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create embed service: %v", err),
		}
	}

	return aiStatus
}

// checkCircuitBreakerHealth checks the health of circuit breakers for all AI operations
func (s *Server) checkCircuitBreakerHealth() map[string]any {
	circuitBreakerStatus := make(map[string]any)

	// Check rewrite service circuit breaker
	rewriteConfig := s.AppConfig.GetRewriteConfig()
	if _, err := ai.NewService(&rewriteConfig, "rewrite", s.Logger); err == nil {
		circuitBreakerStatus["rewrite"] = map[string]any{
			"available": true,
			"message":   "Circuit breaker integrated with rewrite service",
		}
	} else {
		circuitBreakerStatus["rewrite"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create rewrite service: %v", err),
		}
	}

	// Check embed service circuit breaker
	embedConfig := s.AppConfig.GetEmbedConfig()
	if _, err := ai.NewService(&embedConfig, "embed", s.Logger); err == nil {
		circuitBreakerStatus["embed"] = map[string]any{
			"available": true,
			"message":   "Circuit breaker integrated with embed service",
		}
	} else {
		circuitBreakerStatus["embed"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create embed service: %v", err),
		}
	}

	return circuitBreakerStatus
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
		"matcher": map[string]any{
			"strategy":          s.AppConfig.Matcher.Strategy,
			"skill_count":       len(s.Vocabulary.Skills()),
			"skills_file":       s.Vocabulary.Path(),
			"condense_top_n":    s.AppConfig.Matcher.CondenseTopN,
			"suggest_companies": s.AppConfig.Matcher.SuggestCompanies,
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
