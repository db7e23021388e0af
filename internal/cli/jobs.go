package cli

import (
	"fmt"

	"resumatch/internal/common"
	"resumatch/internal/types"

	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect the job catalog",
	Long: `Inspect the job catalog the matcher scores resumes against. The
catalog is either the built-in demo postings or the JSON file configured
under jobs.catalogFile.`,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all job postings",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return prepareJobsFormat(cmd)
	},
	RunE: runJobsList,
}

var jobsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search job postings by title, company or description",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return prepareJobsFormat(cmd)
	},
	RunE: runJobsSearch,
}

var jobsConfig common.CommandConfig

func prepareJobsFormat(cmd *cobra.Command) error {
	cfg := getConfigFromContext(cmd.Context())
	if jobsConfig.OutputFormat == "" {
		jobsConfig.OutputFormat = cfg.App.DefaultFormat
	}
	return common.ValidateOutputFormat(jobsConfig.OutputFormat, cfg.App.SupportedFormats)
}

func init() {
	for _, cmd := range []*cobra.Command{jobsListCmd, jobsSearchCmd} {
		cmd.Flags().StringVarP(&jobsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
		cmd.Flags().StringVar(&jobsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	}

	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsSearchCmd)
}

func runJobsList(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	store, err := buildJobStore(cfg, logger)
	if err != nil {
		return err
	}

	return common.WriteResult(logger, jobsConfig, types.JobList{Jobs: store.List()})
}

func runJobsSearch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	store, err := buildJobStore(cfg, logger)
	if err != nil {
		return err
	}

	results := store.Search(args[0])
	if len(results) == 0 {
		return fmt.Errorf("no job postings matched %q", args[0])
	}

	return common.WriteResult(logger, jobsConfig, types.JobList{Jobs: results})
}
