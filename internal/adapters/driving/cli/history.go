package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your recent questions",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of queries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	queries, err := queryService.History(context.Background(), currentUserID(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(queries) == 0 {
		cmd.Println("No queries yet.")
		return nil
	}

	for i := range queries {
		q := queries[i]
		cmd.Printf("  %s  %s\n", q.CreatedAt.Format("2006-01-02 15:04"), q.Text)
		if len(q.DocumentIDs) > 0 {
			cmd.Printf("    documents: %s\n", strings.Join(q.DocumentIDs, ", "))
		}
	}
	return nil
}
