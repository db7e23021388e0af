package cli

import (
	"context"
	"fmt"

	"resumatch/internal/common"
	"resumatch/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file]",
	Short: "Analyze a resume and match it against job postings",
	Long: `Analyze a resume file (.pdf or .txt) and score it against the job
catalog. Each posting gets an overall match score blending keyword overlap
with semantic similarity (when an embedding provider is configured), plus
matched skills and actionable feedback.

By default the resume is matched against every posting in the catalog.
Use --jobs to restrict matching to specific posting ids.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var (
	matchConfig common.CommandConfig
	matchJobIDs []string
)

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	matchCmd.Flags().StringSliceVar(&matchJobIDs, "jobs", nil, "Comma-separated job posting ids to match against (default: all)")

	// Add completion for format flag
	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	svc, cleanup, err := buildAnalysisService(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("Starting resume analysis",
		"resume_file", args[0],
		"job_ids", len(matchJobIDs),
		"output_format", matchConfig.OutputFormat)

	matchOperation := func(ctx context.Context, path string) (*types.AnalysisResult, error) {
		return svc.AnalyzeFile(ctx, path, matchJobIDs)
	}

	if err := common.RunResumeCommand(cmd.Context(), logger, matchConfig, args[0], matchOperation); err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	logger.Info("Resume analysis completed successfully")
	return nil
}
