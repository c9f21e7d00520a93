// Package plaintext extracts pages from plain text and markdown files.
package plaintext

import (
	"context"
	"regexp"
	"strings"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// pageSplit separates pages on form feeds or three-plus newlines, the
// same heuristic used for text without explicit page structure.
var pageSplit = regexp.MustCompile(`\f|\n[ \t]*\n[ \t]*\n`)

// Extractor treats text files as a sequence of heuristic pages.
type Extractor struct{}

// New creates a plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".md", ".text"}
}

// Extract splits the file into pages. Files without page markers come
// back as a single page.
func (e *Extractor) Extract(_ context.Context, _ string, data []byte) ([]domain.Page, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var pages []domain.Page
	for i, part := range pageSplit.Split(string(data), -1) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		pages = append(pages, domain.Page{Number: i + 1, Text: part})
	}
	return pages, nil
}
