package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resumatch/internal/ai"
	"resumatch/internal/observability"
	"resumatch/internal/pipeline"
	"resumatch/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// validateAnalyzeRequest checks the shared resume/job fields of a request
func (s *Server) validateAnalyzeRequest(resumeText, jobText, jobURL string) error {
	if strings.TrimSpace(resumeText) == "" {
		return fmt.Errorf("resumeText field is required")
	}
	if strings.TrimSpace(jobText) == "" && strings.TrimSpace(jobURL) == "" {
		return fmt.Errorf("either jobText or jobUrl is required")
	}
	if jobText != "" && jobURL != "" {
		return fmt.Errorf("jobText and jobUrl are mutually exclusive")
	}
	if s.MaxRequestSize > 0 {
		if len(resumeText) > int(s.MaxRequestSize/2) {
			return fmt.Errorf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2)
		}
		if len(jobText) > int(s.MaxRequestSize/2) {
			return fmt.Errorf("jobText exceeds recommended size limit of %d characters", s.MaxRequestSize/2)
		}
	}
	return nil
}

// createMatchHandler wraps the match handler with observability
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumatch.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		// Parse request
		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validateAnalyzeRequest(req.ResumeText, req.JobText, req.JobURL); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobText)),
			attribute.Bool("request.job_from_url", req.JobURL != ""),
			attribute.String("operation", "match"),
		)

		input := types.AnalyzeInput{
			ResumeText: req.ResumeText,
			JobText:    req.JobText,
			JobURL:     req.JobURL,
			Strategy:   req.Strategy,
		}

		result, err := s.Pipeline.Analyze(ctx, input)

		metrics := om.GetMetrics()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "match_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_matched", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to match resume", err.Error(), http.StatusInternalServerError)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "resume_matched", true, om,
			attribute.String("match.strategy", result.Strategy),
			attribute.Float64("match.score", result.Score))
		if result.Warning != "" {
			metrics.RecordBusinessMetric(ctx, "fetch_failed", true, om,
				attribute.String("job.url", req.JobURL))
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("match.strategy", result.Strategy),
			attribute.Float64("match.score", result.Score),
			attribute.Int("match.missing", len(result.Missing)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRewriteHandler wraps the rewrite handler with observability
func (s *Server) createRewriteHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumatch.api")
		ctx, span := tracer.Start(ctx, "api.rewrite")
		defer span.End()

		var req RewriteRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validateAnalyzeRequest(req.ResumeText, req.JobText, req.JobURL); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobText)),
			attribute.String("request.variant", req.Variant),
			attribute.String("operation", "rewrite"),
		)

		input := types.AnalyzeInput{
			ResumeText: req.ResumeText,
			JobText:    req.JobText,
			JobURL:     req.JobURL,
			Strategy:   req.Strategy,
		}

		rewriteFn := s.newRewriteFunc()

		metrics := om.GetMetrics()
		var result types.RewriteReport
		err := metrics.TrackAIOperationWithTokens(ctx, "rewrite", func(ctx context.Context) *observability.AIOperationResult {
			report, tokenUsage, opErr := s.Pipeline.Rewrite(ctx, input, req.Variant, rewriteFn)
			result = report
			return &observability.AIOperationResult{
				Error:      opErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "rewrite_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_rewritten", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to rewrite resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_rewritten", true, om,
			attribute.String("rewrite.variant", result.Variant),
			attribute.Float64("match.score", result.Match.Score))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("rewrite.variant", result.Variant),
			attribute.Int("response.rewritten_length", len(result.RewrittenResume)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// newRewriteFunc builds the generative rewrite function, or nil when no AI
// provider is configured so the pipeline falls back to the static variant.
func (s *Server) newRewriteFunc() pipeline.RewriteFunc {
	rewriteConfig := s.AppConfig.GetRewriteConfig()
	if rewriteConfig.APIKey == "" {
		return nil
	}

	return func(ctx context.Context, input types.RewriteResumeInput) (types.RewriteResumeOutput, *ai.TokenUsage, error) {
		aiService, err := ai.NewService(&rewriteConfig, "rewrite", s.Logger)
		if err != nil {
			return types.RewriteResumeOutput{}, nil, err
		}
		defer func() {
			if err := aiService.Provider.Close(); err != nil {
				s.Logger.Warn("Failed to close rewrite provider", "error", err.Error())
			}
		}()
		return aiService.Provider.RewriteResume(ctx, input)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
