package driving

import (
	"context"
	"time"

	"github.com/docsift/docsift/internal/core/domain"
)

// DocumentService manages document registration and ingestion.
type DocumentService interface {
	// Create registers a new document with a pending status.
	Create(ctx context.Context, name string) (*domain.Document, error)

	// Process ingests a file for an existing document: extract,
	// normalize, chunk, embed, and atomically replace the stored
	// chunk set. On return the document status is ready or error,
	// never processing.
	Process(ctx context.Context, documentID, filename string, data []byte, opts ProcessOptions) (*IngestResult, error)

	// Get retrieves a document with its chunk count.
	Get(ctx context.Context, documentID string) (*DocumentDetails, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document and all of its chunks.
	Delete(ctx context.Context, documentID string) error
}

// ProcessOptions configures a single ingestion run.
type ProcessOptions struct {
	// OnProgress, when non-nil, is called as ingestion advances.
	// done/total are stage-local counts (e.g., embedding batches).
	OnProgress func(stage string, done, total int)
}

// IngestResult summarises a completed ingestion.
type IngestResult struct {
	// DocumentID is the ingested document.
	DocumentID string `json:"document_id"`

	// PageCount is the number of pages with extractable text.
	PageCount int `json:"page_count"`

	// ChunksCreated is the number of chunks stored.
	ChunksCreated int `json:"chunks_created"`

	// EmbeddingsGenerated is the number of chunk vectors produced.
	EmbeddingsGenerated int `json:"embeddings_generated"`

	// Status is the final document status.
	Status domain.DocumentStatus `json:"status"`

	// Duration is the wall-clock ingestion time.
	Duration time.Duration `json:"duration"`
}

// DocumentDetails is a document together with derived display data.
type DocumentDetails struct {
	// Document is the stored document.
	Document domain.Document

	// ChunkCount is the number of stored chunks.
	ChunkCount int
}
