package main

import (
	"encoding/json"
	"fmt"

	"meater/internal/config"
	"meater/internal/ui"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded readings, newest first",
	Long: `Lists readings recorded while history.enabled is on. The store is
SQLite by default (history.dsn under the data directory) or Postgres.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")
		if limit <= 0 {
			return fmt.Errorf("--limit must be positive, got %d", limit)
		}

		store, err := newHistoryStore(config.Current())
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()

		readings, err := store.QueryHistory(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(readings)
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderMarkdown(ui.HistoryMarkdown(readings)))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of readings to show")
	historyCmd.Flags().Bool("json", false, "Print readings as JSON")
	rootCmd.AddCommand(historyCmd)
}
