package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift/docsift/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "docsift-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// createTestDocument stores a document to satisfy chunk foreign keys.
func createTestDocument(t *testing.T, store *Store, docID string) {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	doc := &domain.Document{
		ID:        docID,
		Name:      "Test Document " + docID,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.DocumentStore().SaveDocument(context.Background(), doc))
}

func testChunks(docID string, n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:             domain.ChunkID(docID, 1, i),
			DocumentID:     docID,
			Page:           1,
			Order:          i,
			Text:           "chunk text",
			TokenCount:     2,
			Embedding:      []float32{float32(i), 0.5, -1.25},
			EmbeddingModel: "test-model",
		}
	}
	return chunks
}

// ==================== Store Creation Tests ====================

func TestNewStore_Success(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "docsift-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "docsift.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	assert.NoError(t, store.db.Ping())
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "docsift-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	var version int
	row := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations")
	require.NoError(t, row.Scan(&version))
	assert.GreaterOrEqual(t, version, 1)
}

// ==================== Document Store Tests ====================

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	docStore := store.DocumentStore()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	doc := &domain.Document{
		ID:        "doc-1",
		Name:      "Report",
		Status:    domain.StatusPending,
		PageCount: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, docStore.SaveDocument(ctx, doc))

	got, err := docStore.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Report", got.Name)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.True(t, got.CreatedAt.Equal(now))
}

func TestDocumentStore_SaveUpdates(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	docStore := store.DocumentStore()
	ctx := context.Background()
	createTestDocument(t, store, "doc-1")

	doc, err := docStore.GetDocument(ctx, "doc-1")
	require.NoError(t, err)

	doc.Status = domain.StatusReady
	doc.PageCount = 7
	require.NoError(t, docStore.SaveDocument(ctx, doc))

	got, err := docStore.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, got.Status)
	assert.Equal(t, 7, got.PageCount)
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.DocumentStore().GetDocument(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_List(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	docStore := store.DocumentStore()
	ctx := context.Background()

	older := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	newer := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, docStore.SaveDocument(ctx, &domain.Document{
		ID: "doc-old", Name: "Old", Status: domain.StatusPending, CreatedAt: older, UpdatedAt: older,
	}))
	require.NoError(t, docStore.SaveDocument(ctx, &domain.Document{
		ID: "doc-new", Name: "New", Status: domain.StatusPending, CreatedAt: newer, UpdatedAt: newer,
	}))

	docs, err := docStore.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-new", docs[0].ID)
	assert.Equal(t, "doc-old", docs[1].ID)
}

func TestDocumentStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	docStore := store.DocumentStore()
	ctx := context.Background()
	createTestDocument(t, store, "doc-1")
	require.NoError(t, docStore.ReplaceChunks(ctx, "doc-1", testChunks("doc-1", 2)))

	require.NoError(t, docStore.DeleteDocument(ctx, "doc-1"))

	_, err := docStore.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The foreign key cascade removes the chunks too.
	count, err := docStore.CountChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDocumentStore_DeleteNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.DocumentStore().DeleteDocument(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ReplaceChunks(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	docStore := store.DocumentStore()
	ctx := context.Background()
	createTestDocument(t, store, "doc-1")

	require.NoError(t, docStore.ReplaceChunks(ctx, "doc-1", testChunks("doc-1", 3)))

	chunks, err := docStore.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "doc-1_1_0", chunks[0].ID)
	assert.Equal(t, []float32{0, 0.5, -1.25}, chunks[0].Embedding)
	assert.Equal(t, "test-model", chunks[0].EmbeddingModel)

	// A second replace swaps the whole set.
	require.NoError(t, docStore.ReplaceChunks(ctx, "doc-1", testChunks("doc-1", 1)))

	chunks, err = docStore.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestDocumentStore_CountChunks(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	docStore := store.DocumentStore()
	ctx := context.Background()
	createTestDocument(t, store, "doc-1")
	require.NoError(t, docStore.ReplaceChunks(ctx, "doc-1", testChunks("doc-1", 4)))

	count, err := docStore.CountChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestDocumentStore_ListChunks(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	docStore := store.DocumentStore()
	ctx := context.Background()
	createTestDocument(t, store, "doc-a")
	createTestDocument(t, store, "doc-b")
	require.NoError(t, docStore.ReplaceChunks(ctx, "doc-a", testChunks("doc-a", 2)))
	require.NoError(t, docStore.ReplaceChunks(ctx, "doc-b", testChunks("doc-b", 2)))

	all, err := docStore.ListChunks(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	filtered, err := docStore.ListChunks(ctx, []string{"doc-b"})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, chunk := range filtered {
		assert.Equal(t, "doc-b", chunk.DocumentID)
	}
}

// ==================== Query Store Tests ====================

func TestQueryStore_SaveAndList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	docStore := store.DocumentStore()
	queryStore := store.QueryStore()
	ctx := context.Background()
	createTestDocument(t, store, "doc-1")
	require.NoError(t, docStore.ReplaceChunks(ctx, "doc-1", testChunks("doc-1", 2)))

	query := &domain.Query{
		ID:          "q-1",
		UserID:      "user-1",
		Text:        "what is this?",
		DocumentIDs: []string{"doc-1"},
		Embedding:   []float32{0.1, 0.2, 0.3},
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, queryStore.SaveQuery(ctx, query, []string{"doc-1_1_0", "doc-1_1_1"}))

	queries, err := queryStore.ListQueries(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, "q-1", queries[0].ID)
	assert.Equal(t, "what is this?", queries[0].Text)
	assert.Equal(t, []string{"doc-1"}, queries[0].DocumentIDs)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, queries[0].Embedding)
}

func TestQueryStore_ListFiltersByUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	queryStore := store.QueryStore()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, queryStore.SaveQuery(ctx, &domain.Query{
		ID: "q-1", UserID: "user-1", Text: "a", CreatedAt: now,
	}, nil))
	require.NoError(t, queryStore.SaveQuery(ctx, &domain.Query{
		ID: "q-2", UserID: "user-2", Text: "b", CreatedAt: now,
	}, nil))

	queries, err := queryStore.ListQueries(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, "q-1", queries[0].ID)
}

func TestQueryStore_ListNewestFirstWithLimit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	queryStore := store.QueryStore()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 3; i++ {
		require.NoError(t, queryStore.SaveQuery(ctx, &domain.Query{
			ID:        domain.ChunkID("q", 0, i),
			UserID:    "user-1",
			Text:      "question",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}, nil))
	}

	queries, err := queryStore.ListQueries(ctx, "user-1", 2)
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.True(t, queries[0].CreatedAt.After(queries[1].CreatedAt))
}

// ==================== Embedding Codec Tests ====================

func TestFloat32Codec_RoundTrip(t *testing.T) {
	vec := []float32{0, 1.5, -2.25, 3.4e38, -1e-9}

	assert.Equal(t, vec, bytesToFloat32Slice(float32SliceToBytes(vec)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
