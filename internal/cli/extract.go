package cli

import (
	"context"
	"fmt"

	"resumatch/internal/common"
	"resumatch/internal/engine"
	"resumatch/internal/store"
	"resumatch/internal/types"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [job-description-file]",
	Short: "Extract categorized keywords from a job description",
	Long: `Extract keywords from a job description and group them by category:
technical skills, tools, soft skills, and action verbs. Multi-word terms such
as "machine learning" are matched as phrases before single words.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if extractConfig.OutputFormat == "" {
			extractConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(extractConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runExtract,
}

var extractConfig common.CommandConfig

func init() {
	extractCmd.Flags().StringVarP(&extractConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = extractCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	eng := engine.NewService(cfg.EngineOptions(), logger)

	createInput := func(contents []string) (types.ExtractKeywordsInput, error) {
		if len(contents) != 1 {
			return types.ExtractKeywordsInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return types.ExtractKeywordsInput{
			JobDescription: contents[0],
		}, nil
	}

	logDetails := func(input types.ExtractKeywordsInput, cfg common.CommandConfig) {
		logger.Info("Starting keyword extraction",
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	extractOperation := func(ctx context.Context, input types.ExtractKeywordsInput) (types.ExtractedKeywords, error) {
		result := eng.ExtractKeywords(input.JobDescription)

		keywordCount := len(result.TechnicalSkills) + len(result.Tools) +
			len(result.SoftSkills) + len(result.ActionVerbs)
		recordCommandHistory(ctx, cfg, logger, store.Entry{
			Operation:    store.OperationExtract,
			MatchedCount: keywordCount,
			Source:       "cli",
		})

		return result, nil
	}

	err := common.RunEngineCommand(
		cmd.Context(),
		logger,
		extractConfig,
		args,
		createInput,
		extractOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to extract keywords: %w", err)
	}
	logger.Info("Keyword extraction completed successfully")
	return nil
}
