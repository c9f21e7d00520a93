package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/core/ports/driving"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage documents",
	Long:  `Create, upload, list, inspect, or delete documents.`,
}

var documentCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Register a new document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentCreate,
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload [doc-id] [file]",
	Short: "Ingest a file for a document",
	Long: `Extracts text from the file, chunks it, generates embeddings, and
replaces the document's stored chunks. Supported formats: PDF, plain
text, Markdown.`,
	Args: cobra.ExactArgs(2),
	RunE: runDocumentUpload,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document details",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]...",
	Short: "Register and ingest files in one step",
	Long: `Creates a document named after each file and ingests it
immediately. Shorthand for document create followed by document upload.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

var (
	documentListJSON bool
	uploadQuiet      bool
)

func init() {
	documentListCmd.Flags().BoolVar(&documentListJSON, "json", false, "output as JSON")
	documentUploadCmd.Flags().BoolVarP(&uploadQuiet, "quiet", "q", false, "suppress progress output")
	ingestCmd.Flags().BoolVarP(&uploadQuiet, "quiet", "q", false, "suppress progress output")

	documentCmd.AddCommand(documentCreateCmd)
	documentCmd.AddCommand(documentUploadCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runDocumentCreate(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Create(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	cmd.Printf("Created document %s (%s)\n", doc.ID, doc.Name)
	return nil
}

func runDocumentUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	result, err := uploadFile(cmd, args[0], args[1])
	if err != nil {
		return err
	}

	printIngestResult(cmd, result)
	return nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	for _, path := range args {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		doc, err := documentService.Create(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to create document for %s: %w", path, err)
		}

		result, err := uploadFile(cmd, doc.ID, path)
		if err != nil {
			return err
		}
		printIngestResult(cmd, result)
	}
	return nil
}

// uploadFile reads a file and runs the ingestion pipeline, showing a
// progress bar unless suppressed.
func uploadFile(cmd *cobra.Command, documentID, path string) (*driving.IngestResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	opts := driving.ProcessOptions{}
	if !uploadQuiet {
		bar := progressbar.NewOptions(4,
			progressbar.OptionSetDescription("ingesting"),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionShowCount(),
		)
		opts.OnProgress = func(stage string, done, total int) {
			bar.Describe(stage)
			if done == total {
				_ = bar.Add(1)
			}
		}
	}

	result, err := documentService.Process(context.Background(), documentID, filepath.Base(path), data, opts)
	if err != nil {
		return nil, fmt.Errorf("ingestion failed for %s: %w", path, err)
	}
	return result, nil
}

func printIngestResult(cmd *cobra.Command, result *driving.IngestResult) {
	cmd.Printf("Ingested %s: %d pages, %d chunks, %d embeddings (%s)\n",
		result.DocumentID, result.PageCount, result.ChunksCreated,
		result.EmbeddingsGenerated, result.Duration.Round(time.Millisecond))
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if documentListJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents. Use 'docsift ingest <file>' to add one.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name:    %s\n", docs[i].Name)
		cmd.Printf("    Status:  %s\n", docs[i].Status)
		if docs[i].PageCount > 0 {
			cmd.Printf("    Pages:   %d\n", docs[i].PageCount)
		}
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	details, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	doc := details.Document
	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Name:     %s\n", doc.Name)
	cmd.Printf("  Status:   %s\n", doc.Status)
	cmd.Printf("  Pages:    %d\n", doc.PageCount)
	cmd.Printf("  Chunks:   %d\n", details.ChunkCount)
	cmd.Printf("  Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:  %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}
