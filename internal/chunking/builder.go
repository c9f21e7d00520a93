package chunking

import (
	"strings"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
)

// DefaultChunkSizeTokens is the default soft upper bound per chunk.
const DefaultChunkSizeTokens = 600

// DefaultOverlapTokens is the default number of trailing tokens
// repeated at the start of the next chunk.
const DefaultOverlapTokens = 80

// Builder splits normalized page text into sentence-aligned chunks.
//
// The chunk size is a soft bound: a single sentence longer than the
// limit is emitted as its own chunk rather than split mid-sentence.
type Builder struct {
	tokenizer driven.Tokenizer
	chunkSize int
	overlap   int
}

// Option configures the builder.
type Option func(*Builder)

// WithChunkSize sets the chunk size limit in tokens.
func WithChunkSize(tokens int) Option {
	return func(b *Builder) {
		if tokens > 0 {
			b.chunkSize = tokens
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in tokens.
func WithOverlap(tokens int) Option {
	return func(b *Builder) {
		if tokens >= 0 {
			b.overlap = tokens
		}
	}
}

// NewBuilder creates a chunk builder using the given tokenizer.
func NewBuilder(tokenizer driven.Tokenizer, opts ...Option) *Builder {
	b := &Builder{
		tokenizer: tokenizer,
		chunkSize: DefaultChunkSizeTokens,
		overlap:   DefaultOverlapTokens,
	}
	for _, opt := range opts {
		opt(b)
	}

	// An overlap at or above the chunk size would re-emit whole chunks.
	if b.overlap >= b.chunkSize {
		b.overlap = b.chunkSize / 4
	}
	return b
}

// ChunkSize returns the configured token limit.
func (b *Builder) ChunkSize() int {
	return b.chunkSize
}

// Overlap returns the configured overlap in tokens.
func (b *Builder) Overlap() int {
	return b.overlap
}

// Build produces the ordered chunk sequence for a document. Pages are
// normalized and split into sentences; sentences accumulate into a
// buffer until adding one more would exceed the chunk size, at which
// point the buffer is emitted and the next buffer is seeded with the
// trailing overlap tokens of the emitted text.
//
// Token counts are always recomputed on the actual joined string. The
// subword encoding is not concatenative, so summing per-sentence
// counts can drift at join points.
//
// The order counter runs across all pages: chunk order is dense,
// zero-based, and never resets at a page boundary.
func (b *Builder) Build(documentID string, pages []domain.Page) []domain.Chunk {
	var chunks []domain.Chunk
	order := 0

	for _, page := range pages {
		normalized := Normalize(page.Text)
		sentences := SplitSentences(normalized)

		buffer := ""
		for _, sentence := range sentences {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}

			candidate := sentence
			if buffer != "" {
				candidate = buffer + " " + sentence
			}

			if buffer != "" && b.tokenizer.Count(candidate) > b.chunkSize {
				chunks = append(chunks, b.emit(documentID, page.Number, order, buffer))
				emitted := chunks[len(chunks)-1].Text
				order++

				if b.overlap > 0 {
					buffer = b.tokenizer.Tail(emitted, b.overlap) + " " + sentence
				} else {
					buffer = sentence
				}
				continue
			}

			buffer = candidate
		}

		if strings.TrimSpace(buffer) != "" {
			chunks = append(chunks, b.emit(documentID, page.Number, order, buffer))
			order++
		}
	}

	return chunks
}

// emit finalises a buffer into a chunk descriptor.
func (b *Builder) emit(documentID string, page, order int, buffer string) domain.Chunk {
	text := strings.TrimSpace(buffer)
	return domain.Chunk{
		ID:         domain.ChunkID(documentID, page, order),
		DocumentID: documentID,
		Page:       page,
		Order:      order,
		Text:       text,
		TokenCount: b.tokenizer.Count(text),
	}
}
