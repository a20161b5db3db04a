package cli

import (
	"context"
	"fmt"

	"resumatch/internal/ai"
	"resumatch/internal/config"
	"resumatch/internal/errors"
	"resumatch/internal/matcher"
	"resumatch/internal/pipeline"
	"resumatch/internal/types"
)

// newPipeline builds the match/rewrite pipeline shared by CLI commands.
func newPipeline(cfg *config.Config, logger *errors.Logger) (*pipeline.Pipeline, error) {
	vocab, err := config.NewVocabularyFromConfig(cfg.Matcher)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill vocabulary: %w", err)
	}

	return pipeline.New(cfg, vocab, newEmbedFunc(cfg, logger), logger), nil
}

// newEmbedFunc builds the embedding function for semantic matching. Returns
// nil when no API key is configured, which limits commands to the lexical
// strategy.
func newEmbedFunc(cfg *config.Config, logger *errors.Logger) matcher.EmbedFunc {
	if cfg.AI.APIKey == "" && cfg.AI.Embed.APIKey == "" {
		return nil
	}

	return func(ctx context.Context, text string) ([]float64, error) {
		embedConfig := cfg.GetEmbedConfig()
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

// newRewriteFunc builds the generative rewrite function. Returns nil when no
// API key is configured, in which case the pipeline falls back to the static
// variant.
func newRewriteFunc(cfg *config.Config, logger *errors.Logger) pipeline.RewriteFunc {
	rewriteConfig := cfg.GetRewriteConfig()
	if rewriteConfig.APIKey == "" {
		return nil
	}

	return func(ctx context.Context, input types.RewriteResumeInput) (types.RewriteResumeOutput, *ai.TokenUsage, error) {
		rewriteService, err := ai.NewService(&rewriteConfig, "rewrite", logger)
		if err != nil {
			return types.RewriteResumeOutput{}, nil, err
		}
		defer func() {
			if err := rewriteService.Provider.Close(); err != nil {
				logger.Warn("Failed to close rewrite provider", "error", err.Error())
			}
		}()

		return rewriteService.Provider.RewriteResume(ctx, input)
	}
}
