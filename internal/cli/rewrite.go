package cli

import (
	"context"
	"fmt"

	"resumatch/internal/ai"
	"resumatch/internal/common"
	"resumatch/internal/render"
	"resumatch/internal/types"

	"github.com/spf13/cobra"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [resume-file] [job-description-file]",
	Short: "Rewrite a resume toward a job description",
	Long: `Rewrite a resume so it covers the skills a job description asks for.

The generative variant uses AI to rework the resume honestly around the
missing skills. The static variant appends the missing skills to the
original resume without AI; it is also the fallback when no API key is
configured. Use --pdf to additionally render the revised resume as a PDF.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if rewriteConfig.OutputFormat == "" {
			rewriteConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if len(args) < 2 && rewriteJobURL == "" {
			return fmt.Errorf("a job description file or --job-url is required")
		}
		if len(args) == 2 && rewriteJobURL != "" {
			return fmt.Errorf("provide either a job description file or --job-url, not both")
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(rewriteConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runRewrite,
}

var (
	rewriteConfig   common.CommandConfig
	rewriteJobURL   string
	rewriteStrategy string
	rewriteVariant  string
	rewritePDFFile  string
)

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	rewriteCmd.Flags().StringVar(&rewriteConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	rewriteCmd.Flags().StringVar(&rewriteJobURL, "job-url", "", "Fetch the job description from this URL instead of a file")
	rewriteCmd.Flags().StringVar(&rewriteStrategy, "strategy", "", "Match strategy: lexical or semantic (default from config)")
	rewriteCmd.Flags().StringVar(&rewriteVariant, "variant", "", "Rewrite variant: generative or static (default from config)")
	rewriteCmd.Flags().StringVar(&rewritePDFFile, "pdf", "", "Also render the revised resume as a PDF to this path")

	// Add completion for format flag
	_ = rewriteCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rewriteCmd.RegisterFlagCompletionFunc("variant", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"generative", "static"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runRewrite(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	if err := fileProcessor.ValidateOutputFile(rewritePDFFile); err != nil {
		return err
	}

	input, err := buildAnalyzeInput(logger, args, rewriteJobURL, rewriteStrategy)
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}
	rewriteFn := newRewriteFunc(cfg, logger)

	logger.Info("Starting resume rewrite",
		"resume_chars", len(input.ResumeText),
		"variant", rewriteVariant,
		"output_format", rewriteConfig.OutputFormat)

	var report types.RewriteReport
	rewriteOperation := func(ctx context.Context) (types.RewriteReport, *ai.TokenUsage, error) {
		var tokenUsage *ai.TokenUsage
		var err error
		report, tokenUsage, err = p.Rewrite(ctx, input, rewriteVariant, rewriteFn)
		return report, tokenUsage, err
	}

	err = common.RunPipelineCommand(cmd.Context(), logger, rewriteConfig, rewriteOperation)
	if err != nil {
		return fmt.Errorf("failed to rewrite resume: %w", err)
	}

	if rewritePDFFile != "" {
		if err := writeRevisedPDF(fileProcessor, input.ResumeText, report); err != nil {
			return err
		}
		logger.Info("Revised resume PDF written", "path", rewritePDFFile)
	}

	logger.Info("Resume rewrite completed successfully")
	return nil
}

// writeRevisedPDF renders the revised resume and writes it next to the
// formatted report output.
func writeRevisedPDF(fileProcessor *common.FileProcessor, originalResume string, report types.RewriteReport) error {
	pdfBytes, err := render.PDF(types.RevisedResume{
		Original:    originalResume,
		AddedSkills: report.Match.Missing,
	})
	if err != nil {
		return fmt.Errorf("failed to render revised resume PDF: %w", err)
	}

	return fileProcessor.WriteBinaryFile(rewritePDFFile, pdfBytes)
}
