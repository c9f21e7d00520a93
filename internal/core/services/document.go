package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docsift/docsift/internal/chunking"
	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
	"github.com/docsift/docsift/internal/core/ports/driving"
	"github.com/docsift/docsift/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages document registration and ingestion.
//
// Ingestion of one document is serialized: a second Process call for
// the same document while one is running fails with
// ErrIngestInProgress. Different documents ingest in parallel; they
// share no mutable state beyond the store.
type DocumentService struct {
	docStore   driven.DocumentStore
	extractors driven.ExtractorRegistry
	builder    *chunking.Builder
	embedder   driven.EmbeddingService

	mu            sync.Mutex
	activeIngests map[string]struct{}
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	extractors driven.ExtractorRegistry,
	builder *chunking.Builder,
	embedder driven.EmbeddingService,
) *DocumentService {
	return &DocumentService{
		docStore:      docStore,
		extractors:    extractors,
		builder:       builder,
		embedder:      embedder,
		activeIngests: make(map[string]struct{}),
	}
}

// Create registers a new document with a pending status.
func (s *DocumentService) Create(ctx context.Context, name string) (*domain.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("document name: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	logger.Info("Created document %s: %s", doc.ID, doc.Name)
	return doc, nil
}

// Process runs the ingestion pipeline for an uploaded file:
// extract pages, build chunks, generate embeddings, and atomically
// replace the stored chunk set.
//
// Validation failures happen before any state change. After the
// document enters the processing state, every outcome resolves the
// status to ready or error before Process returns.
func (s *DocumentService) Process(
	ctx context.Context, documentID, filename string, data []byte, opts driving.ProcessOptions,
) (*driving.IngestResult, error) {
	start := time.Now()

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file: %w", domain.ErrInvalidInput)
	}

	// Reject unsupported file types before touching the document.
	extractor, err := s.extractors.ForFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	if err := s.beginIngest(documentID); err != nil {
		return nil, err
	}
	defer s.endIngest(documentID)

	logger.Section("Ingestion")
	logger.Debug("Document %s, file %s (%d bytes)", documentID, filename, len(data))

	doc.Status = domain.StatusProcessing
	doc.UpdatedAt = time.Now()
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	result, err := s.ingest(ctx, doc, extractor, filename, data, opts)
	if err != nil {
		// The document never stays in the processing state: any
		// failure past this point resolves it to error.
		doc.Status = domain.StatusError
		doc.UpdatedAt = time.Now()
		if saveErr := s.docStore.SaveDocument(ctx, doc); saveErr != nil {
			logger.Warn("Failed to record error status for %s: %v", documentID, saveErr)
		}
		return nil, err
	}

	result.Duration = time.Since(start)
	logger.Info("Ingestion complete for %s: %d pages, %d chunks, %d embeddings in %s",
		documentID, result.PageCount, result.ChunksCreated, result.EmbeddingsGenerated, result.Duration)
	return result, nil
}

// ingest performs the pipeline body. The caller owns status handling.
func (s *DocumentService) ingest(
	ctx context.Context,
	doc *domain.Document,
	extractor driven.TextExtractor,
	filename string,
	data []byte,
	opts driving.ProcessOptions,
) (*driving.IngestResult, error) {
	progress(opts, "extracting", 0, 1)
	pages, err := extractor.Extract(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, domain.ErrNoContent)
	}
	progress(opts, "extracting", 1, 1)
	logger.Stage("extract", "%d pages from %s", len(pages), filename)

	progress(opts, "chunking", 0, 1)
	chunks := s.builder.Build(doc.ID, pages)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, domain.ErrNoContent)
	}
	progress(opts, "chunking", 1, 1)
	logger.Stage("chunk", "%d chunks (size %d tokens, overlap %d)",
		len(chunks), s.builder.ChunkSize(), s.builder.Overlap())

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	progress(opts, "embedding", 0, len(texts))
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("generate embeddings: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("got %d embeddings for %d chunks", len(embeddings), len(chunks))
	}
	progress(opts, "embedding", len(texts), len(texts))

	model := s.embedder.ModelName()
	logger.Stage("embed", "%d vectors from %s", len(embeddings), model)
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
		chunks[i].EmbeddingModel = model
	}

	progress(opts, "storing", 0, 1)
	if err := s.docStore.ReplaceChunks(ctx, doc.ID, chunks); err != nil {
		return nil, fmt.Errorf("replace chunks: %w", err)
	}
	logger.Stage("store", "replaced chunks for %s", doc.ID)

	doc.Status = domain.StatusReady
	doc.PageCount = len(pages)
	doc.UpdatedAt = time.Now()
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	progress(opts, "storing", 1, 1)

	return &driving.IngestResult{
		DocumentID:          doc.ID,
		PageCount:           len(pages),
		ChunksCreated:       len(chunks),
		EmbeddingsGenerated: len(embeddings),
		Status:              domain.StatusReady,
	}, nil
}

// Get retrieves a document with its chunk count.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	count, err := s.docStore.CountChunks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}

	return &driving.DocumentDetails{
		Document:   *doc,
		ChunkCount: count,
	}, nil
}

// List returns all documents, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Delete removes a document and all of its chunks.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if err := s.beginIngest(documentID); err != nil {
		return err
	}
	defer s.endIngest(documentID)

	return s.docStore.DeleteDocument(ctx, documentID)
}

// beginIngest acquires the per-document ingestion guard.
func (s *DocumentService) beginIngest(documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, active := s.activeIngests[documentID]; active {
		return fmt.Errorf("document %s: %w", documentID, domain.ErrIngestInProgress)
	}
	s.activeIngests[documentID] = struct{}{}
	return nil
}

// endIngest releases the per-document ingestion guard.
func (s *DocumentService) endIngest(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeIngests, documentID)
}

// progress reports a stage update when a callback is configured.
func progress(opts driving.ProcessOptions, stage string, done, total int) {
	if opts.OnProgress != nil {
		opts.OnProgress(stage, done, total)
	}
}
