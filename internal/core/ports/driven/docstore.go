package driven

import (
	"context"

	"github.com/docsift/docsift/internal/core/domain"
)

// DocumentStore persists documents and chunks.
// Backed by SQLite for durable storage.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents, newest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document and its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// ReplaceChunks atomically swaps the full chunk set of a document.
	// A concurrent reader sees either the old set or the new set,
	// never a partial one.
	ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// GetChunks retrieves all chunks for a document, ordered by
	// document order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// CountChunks returns the number of chunks for a document.
	CountChunks(ctx context.Context, documentID string) (int, error)

	// ListChunks returns chunks for ranking. With no documentIDs it
	// returns every chunk; otherwise only chunks of the named
	// documents. Chunks are ordered by (document, order) so ranking
	// tie-breaks are reproducible.
	ListChunks(ctx context.Context, documentIDs []string) ([]domain.Chunk, error)
}

// QueryStore persists query history and the audit of which chunks
// backed each answer.
type QueryStore interface {
	// SaveQuery stores a query together with the IDs of the chunks
	// used to answer it.
	SaveQuery(ctx context.Context, query *domain.Query, usedChunkIDs []string) error

	// ListQueries returns a user's queries, newest first, at most limit.
	ListQueries(ctx context.Context, userID string, limit int) ([]domain.Query, error)
}
