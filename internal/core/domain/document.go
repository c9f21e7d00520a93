package domain

import (
	"fmt"
	"time"
)

// DocumentStatus tracks a document through the ingestion lifecycle.
type DocumentStatus string

const (
	// StatusPending means the document is registered but has no content yet.
	StatusPending DocumentStatus = "pending"

	// StatusProcessing means ingestion is currently running.
	StatusProcessing DocumentStatus = "processing"

	// StatusReady means the document is chunked, embedded, and queryable.
	StatusReady DocumentStatus = "ready"

	// StatusError means the last ingestion attempt failed.
	StatusError DocumentStatus = "error"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusReady, StatusError:
		return true
	}
	return false
}

// Document represents a registered long-form document.
// Content lives in the document's chunks; the document row itself
// only carries identity and lifecycle metadata.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the human-readable display name.
	Name string

	// Status is the current lifecycle state.
	// A finished operation always leaves this at ready or error,
	// never processing.
	Status DocumentStatus

	// PageCount is the number of pages extracted from the source file.
	PageCount int

	// CreatedAt is when the document was registered.
	CreatedAt time.Time

	// UpdatedAt is when the document was last modified.
	UpdatedAt time.Time
}

// Chunk is the atomic unit of embedding and retrieval: a bounded,
// ordered span of normalized page text.
type Chunk struct {
	// ID is derived from (document ID, page, order) and is stable
	// across re-ingestion of identical content.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Page is the 1-based source page number.
	Page int

	// Order is the zero-based position within the whole document.
	// It increases by exactly one per chunk and never resets at
	// page boundaries.
	Order int

	// Text is the chunk content after normalization.
	Text string

	// TokenCount is the token count of Text under the shared
	// subword encoding.
	TokenCount int

	// Embedding is the vector representation. Nil only transiently,
	// before embedding generation completes.
	Embedding []float32

	// EmbeddingModel tags which model produced the embedding.
	// All chunks sharing a tag have vectors of identical dimension.
	EmbeddingModel string
}

// ChunkID builds the deterministic chunk identifier.
func ChunkID(documentID string, page, order int) string {
	return fmt.Sprintf("%s_%d_%d", documentID, page, order)
}

// Page is one page of extracted text, before normalization.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Text is the raw extracted text.
	Text string
}
