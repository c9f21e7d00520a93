// Package pdf extracts per-page text from PDF files using the
// poppler pdftotext utility.
package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor converts PDF bytes to per-page text. pdftotext separates
// pages with form feeds, which map directly onto page numbers.
type Extractor struct {
	runner driven.CommandRunner
}

// New creates a PDF extractor that shells out to pdftotext.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
// Used in tests to avoid requiring the pdftotext binary.
func NewWithRunner(runner driven.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Extract writes the PDF to a temporary file, runs pdftotext, and
// splits its output into pages on form feed boundaries. Pages without
// extractable text are dropped; page numbers still reflect the
// original layout.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) ([]domain.Page, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}

	tmpDir, err := os.MkdirTemp("", "docsift-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	tmpFile := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}

	// "-" sends the text to stdout. -layout keeps column text readable.
	output, err := e.runner.Run(ctx, "pdftotext", "-layout", tmpFile, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext %s: %w", filename, err)
	}

	return SplitPages(string(output)), nil
}

// SplitPages splits pdftotext output on form feeds into numbered
// pages, skipping pages with no text.
func SplitPages(text string) []domain.Page {
	var pages []domain.Page
	for i, raw := range strings.Split(text, "\f") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		pages = append(pages, domain.Page{Number: i + 1, Text: raw})
	}
	return pages
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
