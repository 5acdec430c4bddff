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

var diffCmd = &cobra.Command{
	Use:   "diff [original-file] [optimized-file]",
	Short: "Show a word-level diff between two resume versions",
	Long: `Compare two versions of a resume word by word and show what was added,
removed, and left unchanged. The comparison uses a longest common subsequence
over whitespace-separated words, so reordered sentences show as paired
removals and additions rather than wholesale rewrites.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if diffConfig.OutputFormat == "" {
			diffConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(diffConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runDiff,
}

var diffConfig common.CommandConfig

func init() {
	diffCmd.Flags().StringVarP(&diffConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	diffCmd.Flags().StringVar(&diffConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = diffCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	eng := engine.NewService(cfg.EngineOptions(), logger)

	createInput := func(contents []string) (types.DiffWordsInput, error) {
		if len(contents) != 2 {
			return types.DiffWordsInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.DiffWordsInput{
			Original:  contents[0],
			Optimized: contents[1],
		}, nil
	}

	logDetails := func(input types.DiffWordsInput, cfg common.CommandConfig) {
		logger.Info("Starting word diff",
			"original_chars", len(input.Original),
			"optimized_chars", len(input.Optimized),
			"output_format", cfg.OutputFormat)
	}

	diffOperation := func(ctx context.Context, input types.DiffWordsInput) (types.DiffResult, error) {
		result := eng.DiffWords(input.Original, input.Optimized)

		recordCommandHistory(ctx, cfg, logger, store.Entry{
			Operation:    store.OperationDiff,
			MatchedCount: result.Summary.Unchanged,
			MissingCount: result.Summary.Removed,
			Source:       "cli",
		})

		return result, nil
	}

	err := common.RunEngineCommand(
		cmd.Context(),
		logger,
		diffConfig,
		args,
		createInput,
		diffOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to diff resumes: %w", err)
	}
	logger.Info("Word diff completed successfully")
	return nil
}
