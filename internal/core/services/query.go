package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
	"github.com/docsift/docsift/internal/core/ports/driving"
	"github.com/docsift/docsift/internal/logger"
	"github.com/docsift/docsift/internal/retrieval"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// DefaultTopK is the number of chunks retrieved per question when the
// caller does not specify one.
const DefaultTopK = 5

// noContextAnswer is returned when retrieval finds nothing to ground
// an answer on. The LLM is not called in that case.
const noContextAnswer = "I could not find any relevant content in the selected documents to answer this question."

// answerPrompt frames retrieved context for the answer generator.
const answerPrompt = `You are a helpful assistant answering questions about documents.
Use only the context below to answer. If the context does not contain
the answer, say so. Cite documents by name and page where possible.

Context:
%s

Question: %s

Answer:`

// QueryService answers natural-language questions against the corpus.
//
// The query path is one embedding call plus a full linear scan of
// eligible chunks. There is no cache and no index; exact brute-force
// ranking is the dominant but still modest cost.
type QueryService struct {
	docStore   driven.DocumentStore
	queryStore driven.QueryStore
	embedder   driven.EmbeddingService
	llm        driven.LLMService
}

// NewQueryService creates a new query service.
func NewQueryService(
	docStore driven.DocumentStore,
	queryStore driven.QueryStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
) *QueryService {
	return &QueryService{
		docStore:   docStore,
		queryStore: queryStore,
		embedder:   embedder,
		llm:        llm,
	}
}

// Ask embeds the question, ranks eligible chunks, assembles the
// retrieval context, and generates an answer with citations.
func (s *QueryService) Ask(
	ctx context.Context, userID, text string, opts driving.AskOptions,
) (*domain.Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("query text: %w", domain.ErrInvalidInput)
	}
	if userID == "" {
		return nil, fmt.Errorf("user id: %w", domain.ErrInvalidInput)
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	logger.Section("Query")
	logger.Debug("User %s, top-k %d, filter %v: %q", userID, topK, opts.DocumentIDs, text)

	// An explicit filter naming an unknown document is a caller error;
	// surface it instead of silently returning nothing.
	for _, id := range opts.DocumentIDs {
		if _, err := s.docStore.GetDocument(ctx, id); err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
	}

	queryVector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Stage("embed", "query vector, %d dimensions", len(queryVector))

	candidates, err := s.docStore.ListChunks(ctx, opts.DocumentIDs)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}

	docs, err := s.documentIndex(ctx)
	if err != nil {
		return nil, err
	}

	ranked := retrieval.Rank(queryVector, candidates, docs, topK, opts.DocumentIDs)
	logger.Stage("rank", "%d of %d candidate chunks", len(ranked), len(candidates))

	assembled := retrieval.Assemble(ranked)

	answerText := noContextAnswer
	if len(ranked) > 0 {
		prompt := fmt.Sprintf(answerPrompt, assembled.Text, text)
		answerText, err = s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
		if err != nil {
			return nil, fmt.Errorf("generate answer: %w", err)
		}
	}

	query := &domain.Query{
		ID:          uuid.New().String(),
		UserID:      userID,
		Text:        text,
		DocumentIDs: opts.DocumentIDs,
		Embedding:   queryVector,
		CreatedAt:   time.Now(),
	}

	usedChunkIDs := make([]string, len(ranked))
	for i, r := range ranked {
		usedChunkIDs[i] = r.Chunk.ID
	}

	if err := s.queryStore.SaveQuery(ctx, query, usedChunkIDs); err != nil {
		return nil, fmt.Errorf("save query: %w", err)
	}

	return &domain.Answer{
		QueryID:   query.ID,
		Text:      answerText,
		Citations: assembled.Citations,
	}, nil
}

// History returns a user's past queries, newest first.
func (s *QueryService) History(ctx context.Context, userID string, limit int) ([]domain.Query, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id: %w", domain.ErrInvalidInput)
	}
	return s.queryStore.ListQueries(ctx, userID, limit)
}

// documentIndex loads all documents keyed by ID for eligibility checks.
func (s *QueryService) documentIndex(ctx context.Context) (map[string]domain.Document, error) {
	docs, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	index := make(map[string]domain.Document, len(docs))
	for _, doc := range docs {
		index[doc.ID] = doc
	}
	return index, nil
}
