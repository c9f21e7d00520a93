package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const pingTimeout = 5 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and provider health",
	Long: `Shows the database location, document count, tokenizer encoding,
and whether the configured embedding and LLM providers are reachable.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cmd.Printf("docsift %s\n\n", version)

	if store != nil {
		cmd.Printf("Database:  %s\n", store.Path())
	}
	if documentService != nil {
		docs, err := documentService.List(context.Background())
		if err != nil {
			return fmt.Errorf("listing documents: %w", err)
		}
		cmd.Printf("Documents: %d\n", len(docs))
	}
	if tokenizer != nil {
		cmd.Printf("Tokenizer: %s\n", tokenizer.Encoding())
	}

	if embedder == nil {
		cmd.Println("Embedding: not configured")
	} else {
		cmd.Printf("Embedding: %s\n", pingStatus(embedder.ModelName(), embedder.Ping))
	}
	if llm == nil {
		cmd.Println("LLM:       not configured")
	} else {
		cmd.Printf("LLM:       %s\n", pingStatus(llm.ModelName(), llm.Ping))
	}
	return nil
}

// pingStatus reports the provider model with its reachability.
func pingStatus(model string, ping func(context.Context) error) string {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := ping(ctx); err != nil {
		return fmt.Sprintf("%s, unreachable: %v", model, err)
	}
	return fmt.Sprintf("%s, ok", model)
}
