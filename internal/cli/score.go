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

var scoreCmd = &cobra.Command{
	Use:   "score [job-description-file] [resume-file]",
	Short: "Score a resume against the most frequent job description terms",
	Long: `Score a plain text resume against the most frequent content words of a
job description, without using the curated vocabulary. Useful for job postings
in domains the built-in category lists do not cover.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var scoreConfig common.CommandConfig

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	eng := engine.NewService(cfg.EngineOptions(), logger)

	createInput := func(contents []string) (types.ScoreTextInput, error) {
		if len(contents) != 2 {
			return types.ScoreTextInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.ScoreTextInput{
			JobDescription: contents[0],
			ResumeText:     contents[1],
		}, nil
	}

	logDetails := func(input types.ScoreTextInput, cfg common.CommandConfig) {
		logger.Info("Starting frequency-based scoring",
			"job_chars", len(input.JobDescription),
			"resume_chars", len(input.ResumeText),
			"output_format", cfg.OutputFormat)
	}

	scoreOperation := func(ctx context.Context, input types.ScoreTextInput) (types.MatchResult, error) {
		result := eng.ScoreText(input.JobDescription, input.ResumeText)

		recordCommandHistory(ctx, cfg, logger, store.Entry{
			Operation:    store.OperationScore,
			Score:        result.Score,
			MatchedCount: len(result.MatchedKeywords),
			MissingCount: len(result.MissingKeywords),
			Source:       "cli",
		})

		return result, nil
	}

	err := common.RunEngineCommand(
		cmd.Context(),
		logger,
		scoreConfig,
		args,
		createInput,
		scoreOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}
	logger.Info("Frequency-based scoring completed successfully")
	return nil
}
