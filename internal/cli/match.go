package cli

import (
	"context"
	"fmt"

	"resumatch/internal/ai"
	"resumatch/internal/common"
	"resumatch/internal/errors"
	"resumatch/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file] [job-description-file]",
	Short: "Match a resume against a job description",
	Long: `Match a resume against a job description and report the matched and
missing skills together with a 0-100 score.

The resume is always given as a file (plain text, Markdown, PDF, or DOCX).
The job description comes either from a second file argument or from a URL
via --job-url. When the URL fetch fails, the report carries a warning and
scores against an empty job description instead of failing.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if len(args) < 2 && matchJobURL == "" {
			return fmt.Errorf("a job description file or --job-url is required")
		}
		if len(args) == 2 && matchJobURL != "" {
			return fmt.Errorf("provide either a job description file or --job-url, not both")
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var (
	matchConfig   common.CommandConfig
	matchJobURL   string
	matchStrategy string
)

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	matchCmd.Flags().StringVar(&matchJobURL, "job-url", "", "Fetch the job description from this URL instead of a file")
	matchCmd.Flags().StringVar(&matchStrategy, "strategy", "", "Match strategy: lexical or semantic (default from config)")

	// Add completion for format flag
	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	input, err := buildAnalyzeInput(logger, args, matchJobURL, matchStrategy)
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting resume match",
		"resume_chars", len(input.ResumeText),
		"job_url", input.JobURL,
		"output_format", matchConfig.OutputFormat)

	matchOperation := func(ctx context.Context) (types.MatchReport, *ai.TokenUsage, error) {
		report, err := p.Analyze(ctx, input)
		return report, nil, err
	}

	err = common.RunPipelineCommand(cmd.Context(), logger, matchConfig, matchOperation)
	if err != nil {
		return fmt.Errorf("failed to match resume: %w", err)
	}
	logger.Info("Resume match completed successfully")
	return nil
}

// buildAnalyzeInput reads the resume (and job description, when given as a
// file) and assembles the pipeline input.
func buildAnalyzeInput(logger *errors.Logger, args []string, jobURL, strategy string) (types.AnalyzeInput, error) {
	fileProcessor := common.NewFileProcessor(logger)

	contents, err := fileProcessor.ValidateAndReadDocuments(args...)
	if err != nil {
		return types.AnalyzeInput{}, err
	}

	input := types.AnalyzeInput{
		ResumeText: contents[0],
		JobURL:     jobURL,
		Strategy:   strategy,
	}
	if len(contents) == 2 {
		input.JobText = contents[1]
	}
	return input, nil
}
