package driven

import (
	"context"

	"github.com/docsift/docsift/internal/core/domain"
)

// TextExtractor turns an uploaded file into per-page raw text.
// Each extractor handles specific file extensions (e.g., .pdf, .txt).
type TextExtractor interface {
	// SupportedExtensions returns lowercase extensions including the
	// dot, e.g., ".pdf".
	SupportedExtensions() []string

	// Extract returns the ordered pages of the file. An empty slice
	// means the file contained no extractable text; that is not an
	// error at this layer.
	Extract(ctx context.Context, filename string, data []byte) ([]domain.Page, error)
}

// ExtractorRegistry resolves the extractor responsible for a file.
type ExtractorRegistry interface {
	// ForFile returns the extractor for the file's extension, or
	// domain.ErrUnsupportedType when none claims it.
	ForFile(filename string) (TextExtractor, error)
}

// CommandRunner executes an external command and returns its combined
// output. Exists so extractors that shell out can be tested without
// the underlying binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
