package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type no extractor can handle.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrNoContent indicates extraction or chunking produced nothing.
	// The document is left in the error state.
	ErrNoContent = errors.New("no extractable content")

	// ErrIngestInProgress indicates the document is already being ingested.
	// Re-ingestion is serialized per document.
	ErrIngestInProgress = errors.New("ingestion already in progress")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Both ingestion and querying require embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the answer-generation service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
