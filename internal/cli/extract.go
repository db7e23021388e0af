package cli

import (
	"context"
	"fmt"

	"resumatch/internal/common"
	"resumatch/internal/extract"
	"resumatch/internal/ingest"
	"resumatch/internal/types"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [resume-file]",
	Short: "Extract a structured profile from a resume",
	Long: `Extract contact details, skills, education and experience from a
resume file (.pdf or .txt) without matching it against any jobs. Useful for
checking what the analyzer sees in a resume before running a match.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if extractConfig.OutputFormat == "" {
			extractConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(extractConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runExtract,
}

var extractConfig common.CommandConfig

func init() {
	extractCmd.Flags().StringVarP(&extractConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = extractCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	extractor, err := ingest.NewExtractor(cmd.Context(), logger)
	if err != nil {
		return fmt.Errorf("failed to create text extractor: %w", err)
	}

	extractOperation := func(ctx context.Context, path string) (types.ResumeProfile, error) {
		text, err := extractor.ExtractFile(ctx, path)
		if err != nil {
			return types.ResumeProfile{}, err
		}
		return extract.Analyze(text), nil
	}

	if err := common.RunResumeCommand(cmd.Context(), logger, extractConfig, args[0], extractOperation); err != nil {
		return fmt.Errorf("failed to extract resume profile: %w", err)
	}

	logger.Info("Resume profile extraction completed successfully")
	return nil
}
