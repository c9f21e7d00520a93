package extractors

import (
	"path/filepath"
	"strings"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
)

// Registry selects an extractor by file extension.
type Registry struct {
	byExtension map[string]driven.TextExtractor
}

// NewRegistry creates a registry over the given extractors. Later
// extractors win on extension collisions.
func NewRegistry(extractors ...driven.TextExtractor) *Registry {
	r := &Registry{byExtension: make(map[string]driven.TextExtractor)}
	for _, e := range extractors {
		for _, ext := range e.SupportedExtensions() {
			r.byExtension[strings.ToLower(ext)] = e
		}
	}
	return r
}

// ForFile returns the extractor for the file's extension, or
// ErrUnsupportedType when no extractor claims it.
func (r *Registry) ForFile(filename string) (driven.TextExtractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	e, ok := r.byExtension[ext]
	if !ok {
		return nil, domain.ErrUnsupportedType
	}
	return e, nil
}

// Supports reports whether any registered extractor handles the file.
func (r *Registry) Supports(filename string) bool {
	_, err := r.ForFile(filename)
	return err == nil
}
