package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"resumatch/internal/config"
	"resumatch/internal/errors"
	"resumatch/internal/store"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded analysis history",
	Long: `Inspect the local analysis history. History recording must be enabled
in the configuration (store.enabled) and applies to both CLI runs and API
requests.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded analyses, newest first",
	RunE:  runHistoryList,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics over recorded analyses",
	RunE:  runHistoryStats,
}

var (
	historyOperation string
	historyLimit     int
	historyJSON      bool
)

func init() {
	historyListCmd.Flags().StringVar(&historyOperation, "operation", "", "Filter by operation: extract, match, score, diff")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum number of entries (default 50, capped at 100)")
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyStatsCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
}

// openHistoryStore opens the configured history store, failing when history
// recording is disabled.
func openHistoryStore(cfg *config.Config, logger *errors.Logger) (*store.History, error) {
	if !cfg.Store.Enabled {
		return nil, fmt.Errorf("analysis history is disabled (set store.enabled to true)")
	}
	return store.Open(cfg.Store.Path, logger)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	history, err := openHistoryStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := history.Close(); err != nil {
			logger.LogError(err, "Failed to close history store")
		}
	}()

	entries, err := history.List(cmd.Context(), historyOperation, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		return printJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No recorded analyses.")
		return nil
	}

	fmt.Printf("%-6s %-9s %-6s %-8s %-8s %-5s %s\n",
		"ID", "OPERATION", "SCORE", "MATCHED", "MISSING", "SRC", "CREATED")
	for _, entry := range entries {
		fmt.Println(formatHistoryRow(entry))
	}
	return nil
}

// formatHistoryRow renders one history entry as a table row.
func formatHistoryRow(entry store.Entry) string {
	return fmt.Sprintf("%-6d %-9s %-6d %-8d %-8d %-5s %s",
		entry.ID, entry.Operation, entry.Score,
		entry.MatchedCount, entry.MissingCount,
		entry.Source, entry.CreatedAt.Format("2006-01-02 15:04:05"))
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	history, err := openHistoryStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := history.Close(); err != nil {
			logger.LogError(err, "Failed to close history store")
		}
	}()

	stats, err := history.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to collect history stats: %w", err)
	}

	if historyJSON {
		return printJSON(stats)
	}

	fmt.Printf("Total analyses: %d\n", stats.TotalAnalyses)
	fmt.Printf("Average score:  %.1f\n", stats.AverageScore)
	if len(stats.ByOperation) > 0 {
		fmt.Println("By operation:")
		for op, count := range stats.ByOperation {
			fmt.Printf("  %-8s %d\n", op, count)
		}
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

// recordCommandHistory persists an analysis entry when history recording is
// enabled. Failures are logged and never fail the command.
func recordCommandHistory(ctx context.Context, cfg *config.Config, logger *errors.Logger, entry store.Entry) {
	if !cfg.Store.Enabled {
		return
	}

	history, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		logger.LogError(err, "Failed to open history store")
		return
	}
	defer func() {
		if err := history.Close(); err != nil {
			logger.LogError(err, "Failed to close history store")
		}
	}()

	if _, err := history.Record(ctx, entry); err != nil {
		logger.LogError(err, "Failed to record analysis history",
			"operation", entry.Operation)
	}
}
