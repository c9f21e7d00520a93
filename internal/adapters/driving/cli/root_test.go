package cli

import (
	"context"
	"strings"

	"github.com/docsift/docsift/internal/adapters/driven/storage/memory"
	"github.com/docsift/docsift/internal/chunking"
	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
	"github.com/docsift/docsift/internal/core/services"
	"github.com/docsift/docsift/internal/extractors"
)

// --- Test doubles wired behind the commands ---

type cliWordTokenizer struct{}

func (cliWordTokenizer) Count(text string) int { return len(strings.Fields(text)) }

func (cliWordTokenizer) Tail(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[len(words)-n:], " ")
}

func (cliWordTokenizer) Encoding() string { return "words" }

type cliStubExtractor struct{}

func (cliStubExtractor) SupportedExtensions() []string { return []string{".txt"} }

func (cliStubExtractor) Extract(_ context.Context, _ string, data []byte) ([]domain.Page, error) {
	return []domain.Page{{Number: 1, Text: string(data)}}, nil
}

type cliStubEmbedder struct{}

func (cliStubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (cliStubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = []float32{1, 0, 0}
	}
	return result, nil
}

func (cliStubEmbedder) Dimensions() int              { return 3 }
func (cliStubEmbedder) ModelName() string            { return "stub-embed" }
func (cliStubEmbedder) Ping(_ context.Context) error { return nil }
func (cliStubEmbedder) Close() error                 { return nil }

type cliStubLLM struct{}

func (cliStubLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return "An answer grounded in the documents.", nil
}

func (cliStubLLM) ModelName() string            { return "stub-llm" }
func (cliStubLLM) Ping(_ context.Context) error { return nil }
func (cliStubLLM) Close() error                 { return nil }

// setupTestServices wires the commands to in-memory services and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	prevDoc := documentService
	prevQuery := queryService
	prevEmbedder := embedder
	prevLLM := llm
	prevTokenizer := tokenizer

	docStore := memory.NewDocumentStore()
	queryStore := memory.NewQueryStore()
	builder := chunking.NewBuilder(cliWordTokenizer{}, chunking.WithChunkSize(20), chunking.WithOverlap(3))
	registry := extractors.NewRegistry(cliStubExtractor{})

	embedder = cliStubEmbedder{}
	llm = cliStubLLM{}
	tokenizer = cliWordTokenizer{}

	documentService = services.NewDocumentService(docStore, registry, builder, embedder)
	queryService = services.NewQueryService(docStore, queryStore, embedder, llm)

	return func() {
		documentService = prevDoc
		queryService = prevQuery
		embedder = prevEmbedder
		llm = prevLLM
		tokenizer = prevTokenizer
	}
}
