package domain

import "time"

// Query records a single retrieval request by a user.
type Query struct {
	// ID is the unique identifier for the query.
	ID string

	// UserID identifies who asked.
	UserID string

	// Text is the natural-language query text.
	Text string

	// DocumentIDs optionally restricts retrieval scope. Empty means
	// all ready documents are eligible.
	DocumentIDs []string

	// Embedding is the query vector under the same model as the
	// chunks it was ranked against.
	Embedding []float32

	// CreatedAt is when the query was executed.
	CreatedAt time.Time
}

// RetrievalResult is a ranked chunk. It is transient: only the IDs of
// used chunks are persisted, as an audit trail on the query.
type RetrievalResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the cosine similarity against the query vector,
	// in [-1, 1].
	Score float64

	// DocumentName is the display name of the owning document.
	DocumentName string
}

// Citation points an answer back at its supporting chunk.
type Citation struct {
	// ChunkID is the supporting chunk.
	ChunkID string `json:"chunk_id"`

	// DocumentID is the owning document.
	DocumentID string `json:"document_id"`

	// DocumentName is the document display name.
	DocumentName string `json:"document_name"`

	// Page is the source page number.
	Page int `json:"page"`

	// Preview is the chunk text truncated for display.
	Preview string `json:"preview"`

	// Score is the similarity score rounded to four decimal places.
	Score float64 `json:"score"`
}

// Answer is the result of a question answered against the corpus.
type Answer struct {
	// QueryID identifies the persisted query record.
	QueryID string `json:"query_id"`

	// Text is the generated answer.
	Text string `json:"text"`

	// Citations lists the chunks the answer was grounded on,
	// highest similarity first.
	Citations []Citation `json:"citations"`
}
