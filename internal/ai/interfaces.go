package ai

import (
	"context"

	"resumatch/internal/types"
)

// AIProvider interface for different AI implementations
// Generative methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	RewriteResume(ctx context.Context, input types.RewriteResumeInput) (types.RewriteResumeOutput, *TokenUsage, error)
	EmbedText(ctx context.Context, text string) ([]float64, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// SchemaBuilder interface for building AI request schemas
type SchemaBuilder interface {
	BuildRewriteSchema() any
}

// PromptBuilder interface for building AI prompts
type PromptBuilder interface {
	BuildRewritePrompt(resumeText, jobText string, missingSkills []string) string
}
