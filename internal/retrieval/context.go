package retrieval

import (
	"fmt"
	"math"
	"strings"

	"github.com/docsift/docsift/internal/core/domain"
)

// BlockSeparator joins labeled context blocks in the prompt context.
const BlockSeparator = "\n\n---\n\n"

// PreviewLength is the maximum citation preview length in characters.
const PreviewLength = 200

// AssembledContext is the prompt-ready output of retrieval.
type AssembledContext struct {
	// Text is the concatenated labeled context blocks.
	Text string

	// Citations mirror the ranked results, one per block.
	Citations []domain.Citation
}

// Assemble turns ranked results into a prompt context string and the
// matching citation records. It is pure: callers hand the text to the
// answer generator together with the original query.
func Assemble(results []domain.RetrievalResult) AssembledContext {
	blocks := make([]string, 0, len(results))
	citations := make([]domain.Citation, 0, len(results))

	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("[Document: %s, Page %d]\n%s",
			r.DocumentName, r.Chunk.Page, r.Chunk.Text))

		citations = append(citations, domain.Citation{
			ChunkID:      r.Chunk.ID,
			DocumentID:   r.Chunk.DocumentID,
			DocumentName: r.DocumentName,
			Page:         r.Chunk.Page,
			Preview:      preview(r.Chunk.Text),
			Score:        roundScore(r.Score),
		})
	}

	return AssembledContext{
		Text:      strings.Join(blocks, BlockSeparator),
		Citations: citations,
	}
}

// preview truncates chunk text for display, marking the cut.
// Truncation counts runes so multi-byte characters are never split.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength]) + "..."
}

// roundScore rounds to four decimal places.
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}
