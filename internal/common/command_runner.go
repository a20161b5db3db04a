package common

import (
	"context"
	"fmt"
	"os"

	"resumatch/internal/ai"
	"resumatch/internal/errors"
)

// PipelineFunc is a generic function signature for a pipeline operation with
// optional token usage (nil for purely local operations).
type PipelineFunc[Output any] func(ctx context.Context) (Output, *ai.TokenUsage, error)

// RunPipelineCommand encapsulates the common logic for CLI commands: run the
// operation, report token usage, and write the formatted result.
func RunPipelineCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	operation PipelineFunc[Output],
) error {
	outputHandler := NewOutputHandler(logger)

	result, tokenUsage, err := operation(ctx)
	if err != nil {
		return err
	}

	// Report token usage
	if tokenUsage != nil {
		if logger != nil {
			logger.Info("AI token usage", "input_tokens", tokenUsage.InputTokens, "output_tokens", tokenUsage.OutputTokens, "total_tokens", tokenUsage.TotalTokens)
		} else {
			fmt.Fprintf(os.Stderr, "AI token usage: input=%d, output=%d, total=%d\n", tokenUsage.InputTokens, tokenUsage.OutputTokens, tokenUsage.TotalTokens)
		}
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
