package server

import (
	"context"
	"time"

	"resumatch/internal/ai"
	"resumatch/internal/config"
	resumatchErrors "resumatch/internal/errors"
	"resumatch/internal/matcher"
	"resumatch/internal/pipeline"
)

// MatchRequest represents the request body for the match endpoint
type MatchRequest struct {
	ResumeText string `json:"resumeText"`
	JobText    string `json:"jobText,omitempty"`
	JobURL     string `json:"jobUrl,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
}

// RewriteRequest represents the request body for the rewrite endpoint
type RewriteRequest struct {
	ResumeText string `json:"resumeText"`
	JobText    string `json:"jobText,omitempty"`
	JobURL     string `json:"jobUrl,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
	Variant    string `json:"variant,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Skill vocabulary shared by all match operations
	Vocabulary *config.SkillVocabulary

	// Pipeline executing match and rewrite operations
	Pipeline *pipeline.Pipeline

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *LimiterManager

	// Logger
	Logger *resumatchErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
// (Refactored to reduce long parameter list in NewServer)
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, vocab *config.SkillVocabulary, logger *resumatchErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *LimiterManager
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewLimiterManager(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		Vocabulary:     vocab,
		Pipeline:       pipeline.New(appCfg, vocab, newEmbedFunc(appCfg, logger), logger),
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}

// newEmbedFunc builds the embedding function for semantic matching. Returns
// nil when no API key is configured, which limits the server to the lexical
// strategy.
func newEmbedFunc(appCfg *config.Config, logger *resumatchErrors.Logger) matcher.EmbedFunc {
	if appCfg.AI.APIKey == "" && appCfg.AI.Embed.APIKey == "" {
		return nil
	}

	return func(ctx context.Context, text string) ([]float64, error) {
		embedConfig := appCfg.GetEmbedConfig()
		embedService, err := ai.NewService(&embedConfig, "embed", logger)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := embedService.Provider.Close(); err != nil {
				logger.Warn("Failed to close embed provider", "error", err.Error())
			}
		}()

		return embedService.Provider.EmbedText(ctx, text)
	}
}
