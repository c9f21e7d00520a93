package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/extractors"
	"github.com/docsift/docsift/internal/extractors/pdf"
	"github.com/docsift/docsift/internal/extractors/plaintext"
	"github.com/docsift/docsift/internal/logger"
)

// settleDelay is how long a file must stay unchanged before it is
// ingested. Editors and downloads write in bursts.
const settleDelay = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and ingest new files",
	Long: `Watches the directory for new or changed files and ingests each one
automatically. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch target %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := extractors.NewRegistry(pdf.New(), plaintext.New())
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settleDelay)
	defer ticker.Stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !registry.Supports(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case now := <-ticker.C:
			for path, touched := range pending {
				if now.Sub(touched) < settleDelay {
					continue
				}
				delete(pending, path)
				if err := ingestWatchedFile(cmd, path); err != nil {
					logger.Warn("Ingest %s: %v", path, err)
				}
			}
		}
	}
}

// ingestWatchedFile registers and ingests one file from the watched
// directory.
func ingestWatchedFile(cmd *cobra.Command, path string) error {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := documentService.Create(context.Background(), name)
	if err != nil {
		return err
	}

	result, err := uploadFile(cmd, doc.ID, path)
	if err != nil {
		return err
	}

	printIngestResult(cmd, result)
	return nil
}
