package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVector builds a vector of the service's expected dimensionality
// whose first component identifies the input.
func fakeVector(seed float64, dims int) []float64 {
	v := make([]float64, dims)
	v[0] = seed
	return v
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *EmbeddingService) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewEmbeddingService(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return server, svc
}

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "k"})

	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestEmbedBatch_OrdersByResponseIndex(t *testing.T) {
	var gotAuth string
	_, svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/embeddings", r.URL.Path)

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 2)

		// Respond out of order; the client must reorder by index.
		fmt.Fprintf(w, `{"data":[
			{"index":1,"embedding":%s},
			{"index":0,"embedding":%s}
		]}`, mustJSON(t, fakeVector(2, 1536)), mustJSON(t, fakeVector(1, 1536)))
	})

	embeddings, err := svc.EmbedBatch(context.Background(), []string{"first", "second"})

	require.NoError(t, err)
	require.Len(t, embeddings, 2)
	assert.Equal(t, float32(1), embeddings[0][0])
	assert.Equal(t, float32(2), embeddings[1][0])
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestEmbedBatch_SplitsIntoBatches(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 1, "batch size caps each call")

		fmt.Fprintf(w, `{"data":[{"index":0,"embedding":%s}]}`, mustJSON(t, fakeVector(1, 1536)))
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(Config{
		APIKey:    "k",
		BaseURL:   server.URL,
		BatchSize: 1,
	})
	require.NoError(t, err)

	embeddings, err := svc.EmbedBatch(context.Background(), []string{"a", "b", "c"})

	require.NoError(t, err)
	assert.Len(t, embeddings, 3)
	assert.Equal(t, 3, calls)
}

func TestEmbedBatch_FailedBatchFailsWhole(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"message":"rate limit exceeded","type":"rate_limit"}}`)
			return
		}
		fmt.Fprintf(w, `{"data":[{"index":0,"embedding":%s}]}`, mustJSON(t, fakeVector(1, 1536)))
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "k", BaseURL: server.URL, BatchSize: 1})
	require.NoError(t, err)

	_, err = svc.EmbedBatch(context.Background(), []string{"a", "b", "c"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch 2")
	assert.Contains(t, err.Error(), "rate limit exceeded")
	assert.Equal(t, 2, calls, "no batch after the failed one is attempted")
}

func TestEmbedBatch_DimensionMismatch(t *testing.T) {
	_, svc := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"data":[{"index":0,"embedding":[0.1,0.2]}]}`)
	})

	_, err := svc.EmbedBatch(context.Background(), []string{"text"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimensions")
}

func TestEmbedBatch_CountMismatch(t *testing.T) {
	_, svc := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"data":[{"index":0,"embedding":%s}]}`, mustJSON(t, fakeVector(1, 1536)))
	})

	_, err := svc.EmbedBatch(context.Background(), []string{"a", "b"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 1 embeddings for 2 texts")
}

func TestEmbedBatch_EmptyInput(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "k"})
	require.NoError(t, err)

	embeddings, err := svc.EmbedBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, embeddings)
}

func TestEmbed_SingleText(t *testing.T) {
	_, svc := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"data":[{"index":0,"embedding":%s}]}`, mustJSON(t, fakeVector(7, 1536)))
	})

	vec, err := svc.Embed(context.Background(), "hello")

	require.NoError(t, err)
	require.Len(t, vec, 1536)
	assert.Equal(t, float32(7), vec[0])
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
