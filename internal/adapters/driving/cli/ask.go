package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/core/ports/driving"
)

var (
	askTopK      int
	askDocuments []string
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Embeds the question, retrieves the most similar chunks across ready
documents, and generates an answer grounded in them. Citations point
back to the document and page each passage came from.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (overrides retrieval.top_k, default 5)")
	askCmd.Flags().StringSliceVarP(&askDocuments, "document", "d", nil, "restrict retrieval to document IDs (repeatable)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	// The flag takes precedence; the config value covers the rest.
	topK := askTopK
	if topK <= 0 && cfg != nil {
		topK = cfg.Retrieval.TopK
	}

	answer, err := queryService.Ask(context.Background(), currentUserID(), args[0], driving.AskOptions{
		DocumentIDs: askDocuments,
		TopK:        topK,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Text)

	if len(answer.Citations) > 0 {
		cmd.Println("\nSources:")
		for i, c := range answer.Citations {
			cmd.Printf("  [%d] %s, page %d (%.4f)\n", i+1, c.DocumentName, c.Page, c.Score)
		}
	}
	return nil
}

// currentUserID identifies the local user for query history.
func currentUserID() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "local"
	}
	return u.Username
}
