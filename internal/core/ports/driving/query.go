package driving

import (
	"context"

	"github.com/docsift/docsift/internal/core/domain"
)

// QueryService answers natural-language questions against the corpus.
type QueryService interface {
	// Ask embeds the question, ranks eligible chunks by cosine
	// similarity, assembles a bounded context, and generates an
	// answer with citations.
	Ask(ctx context.Context, userID, text string, opts AskOptions) (*domain.Answer, error)

	// History returns a user's past queries, newest first.
	History(ctx context.Context, userID string, limit int) ([]domain.Query, error)
}

// AskOptions configures retrieval for a single question.
type AskOptions struct {
	// DocumentIDs restricts retrieval to the named documents.
	// Empty means all ready documents.
	DocumentIDs []string

	// TopK is the number of chunks to retrieve (default 5).
	TopK int
}
