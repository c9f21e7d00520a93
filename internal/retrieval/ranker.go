package retrieval

import (
	"sort"

	"github.com/docsift/docsift/internal/core/domain"
)

// Rank scores every eligible chunk against the query vector and
// returns the top k by descending similarity.
//
// A chunk is eligible when it has an embedding, its document is ready,
// and (if allowedDocIDs is non-empty) its document is in the allowed
// set. Exact score ties keep the candidates' input order, so identical
// inputs always produce identical output.
func Rank(
	query []float32,
	chunks []domain.Chunk,
	docs map[string]domain.Document,
	k int,
	allowedDocIDs []string,
) []domain.RetrievalResult {
	if k <= 0 {
		return nil
	}

	var allowed map[string]struct{}
	if len(allowedDocIDs) > 0 {
		allowed = make(map[string]struct{}, len(allowedDocIDs))
		for _, id := range allowedDocIDs {
			allowed[id] = struct{}{}
		}
	}

	var results []domain.RetrievalResult
	for _, chunk := range chunks {
		if chunk.Embedding == nil {
			continue
		}
		doc, ok := docs[chunk.DocumentID]
		if !ok || doc.Status != domain.StatusReady {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[chunk.DocumentID]; !ok {
				continue
			}
		}

		results = append(results, domain.RetrievalResult{
			Chunk:        chunk,
			Score:        Cosine(query, chunk.Embedding),
			DocumentName: doc.Name,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}
