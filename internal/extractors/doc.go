// Package extractors converts uploaded files into per-page raw text.
// Extraction runs before normalization and chunking; everything past
// this boundary works on plain text.
package extractors
