package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past conversions",
	Long:  `List or clear the record of completed conversions.`,
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversions",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all conversion records",
	RunE:  runHistoryClear,
}

// historyLimit is the --limit flag value.
var historyLimit int

func init() {
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 20,
		"Maximum number of records to show (0 for all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No conversions recorded.")
		return nil
	}

	for _, r := range records {
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		cmd.Printf("%s  %-6s  %s -> %s (%d/%d rewritten)\n",
			r.StartedAt.Format("2006-01-02 15:04"), status,
			r.InputPath, r.OutputPath,
			r.DocumentsRewritten, r.EntriesTotal)
		if r.Error != "" {
			cmd.Printf("%19s %s\n", "", r.Error)
		}
	}

	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if err := historyService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	cmd.Println("Conversion history cleared.")
	return nil
}
