package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
)

// Ensure QueryStore implements the interface.
var _ driven.QueryStore = (*QueryStore)(nil)

// QueryStore is an in-memory implementation of driven.QueryStore.
type QueryStore struct {
	mu      sync.RWMutex
	queries []domain.Query
	audits  map[string][]string
}

// NewQueryStore creates a new in-memory query store.
func NewQueryStore() *QueryStore {
	return &QueryStore{
		audits: make(map[string][]string),
	}
}

// SaveQuery stores a query and its used-chunk audit.
func (s *QueryStore) SaveQuery(_ context.Context, query *domain.Query, usedChunkIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, *query)
	s.audits[query.ID] = append([]string(nil), usedChunkIDs...)
	return nil
}

// ListQueries returns a user's queries, newest first.
func (s *QueryStore) ListQueries(_ context.Context, userID string, limit int) ([]domain.Query, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	var result []domain.Query
	for _, q := range s.queries {
		if q.UserID == userID {
			result = append(result, q)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// UsedChunks returns the audit trail for a query. Test helper.
func (s *QueryStore) UsedChunks(queryID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.audits[queryID]...)
}
