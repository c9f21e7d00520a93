// Package cli implements the cobra command-line interface. Commands
// talk to the core services through the driving ports, so tests can
// swap in fakes.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/docsift/docsift/internal/adapters/driven/config/file"
	embeddingollama "github.com/docsift/docsift/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/docsift/docsift/internal/adapters/driven/embedding/openai"
	llmollama "github.com/docsift/docsift/internal/adapters/driven/llm/ollama"
	llmopenai "github.com/docsift/docsift/internal/adapters/driven/llm/openai"
	"github.com/docsift/docsift/internal/adapters/driven/storage/sqlite"
	"github.com/docsift/docsift/internal/adapters/driven/tokenizer/tiktoken"
	"github.com/docsift/docsift/internal/chunking"
	"github.com/docsift/docsift/internal/core/ports/driven"
	"github.com/docsift/docsift/internal/core/ports/driving"
	"github.com/docsift/docsift/internal/core/services"
	"github.com/docsift/docsift/internal/extractors"
	"github.com/docsift/docsift/internal/extractors/pdf"
	"github.com/docsift/docsift/internal/extractors/plaintext"
	"github.com/docsift/docsift/internal/logger"
)

var version = "0.1.0"

// Services used by the commands. Wired by initServices, or replaced
// with fakes in tests.
var (
	documentService driving.DocumentService
	queryService    driving.QueryService
)

var (
	cfg   *configfile.Config
	store *sqlite.Store

	embedder  driven.EmbeddingService
	llm       driven.LLMService
	tokenizer driven.Tokenizer
)

var (
	verboseFlag   bool
	dataDirFlag   string
	configDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Ask questions about your documents",
	Long: `docsift ingests PDF and text documents, chunks and embeds their
content, and answers natural-language questions grounded in the most
relevant passages, with citations back to document and page.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "database directory (default ~/.docsift/data)")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "config directory (default ~/.docsift)")
}

// Execute runs the CLI.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// initServices wires stores, extractors, and providers from config.
// Idempotent: tests that pre-populate the services skip the wiring.
func initServices() error {
	if documentService != nil && queryService != nil {
		return nil
	}

	var err error
	cfg, err = configfile.Load(configDirFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dataDir := dataDirFlag
	if dataDir == "" {
		dataDir = cfg.Storage.DataDir
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	logger.Debug("Database: %s", store.Path())

	tokenizer, err = tiktoken.New("")
	if err != nil {
		return fmt.Errorf("loading tokenizer: %w", err)
	}

	builder := chunking.NewBuilder(tokenizer,
		chunking.WithChunkSize(cfg.Chunking.ChunkSizeTokens),
		chunking.WithOverlap(cfg.Chunking.OverlapTokens),
	)

	registry := extractors.NewRegistry(pdf.New(), plaintext.New())

	embedder = buildEmbedder(cfg.Embedding)
	llm = buildLLM(cfg.LLM)

	documentService = services.NewDocumentService(store.DocumentStore(), registry, builder, embedder)
	queryService = services.NewQueryService(store.DocumentStore(), store.QueryStore(), embedder, llm)
	return nil
}

// buildEmbedder constructs the configured embedding provider. A
// provider that cannot be built (e.g. missing API key) leaves the
// embedder nil; operations that need it fail with a clear error.
func buildEmbedder(p configfile.ProviderConfig) driven.EmbeddingService {
	switch p.Provider {
	case "ollama":
		return embeddingollama.NewEmbeddingService(embeddingollama.Config{
			BaseURL:    p.BaseURL,
			Model:      p.Model,
			Dimensions: p.Dimensions,
		})
	case "openai", "":
		svc, err := embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey:            p.APIKey(),
			BaseURL:           p.BaseURL,
			Model:             p.Model,
			BatchSize:         p.BatchSize,
			RequestsPerSecond: p.RequestsPerSecond,
		})
		if err != nil {
			logger.Warn("Embedding provider unavailable: %v", err)
			return nil
		}
		return svc
	default:
		logger.Warn("Unknown embedding provider %q", p.Provider)
		return nil
	}
}

// buildLLM constructs the configured answer generator, nil when the
// provider cannot be built.
func buildLLM(p configfile.ProviderConfig) driven.LLMService {
	switch p.Provider {
	case "ollama":
		return llmollama.NewLLMService(llmollama.Config{
			BaseURL: p.BaseURL,
			Model:   p.Model,
		})
	case "openai", "":
		svc, err := llmopenai.NewLLMService(llmopenai.Config{
			APIKey:  p.APIKey(),
			BaseURL: p.BaseURL,
			Model:   p.Model,
		})
		if err != nil {
			logger.Warn("LLM provider unavailable: %v", err)
			return nil
		}
		return svc
	default:
		logger.Warn("Unknown LLM provider %q", p.Provider)
		return nil
	}
}

// closeServices releases the database handle and provider clients
// after command execution.
func closeServices() {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("Closing store: %v", err)
		}
		store = nil
	}
	if embedder != nil {
		if err := embedder.Close(); err != nil {
			logger.Warn("Closing embedding provider: %v", err)
		}
		embedder = nil
	}
	if llm != nil {
		if err := llm.Close(); err != nil {
			logger.Warn("Closing LLM provider: %v", err)
		}
		llm = nil
	}
}
