// Package file loads and persists application configuration from a
// TOML file in the docsift config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/docsift/docsift/internal/adapters/driven/embedding/openai"
	"github.com/docsift/docsift/internal/chunking"
	"github.com/docsift/docsift/internal/core/services"
)

// Config holds all user-tunable settings.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Embedding ProviderConfig  `toml:"embedding"`
	LLM       ProviderConfig  `toml:"llm"`

	path string
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	// DataDir is the database directory. Empty means the default
	// under the user's home directory.
	DataDir string `toml:"data_dir"`
}

// ChunkingConfig tunes the chunk builder.
type ChunkingConfig struct {
	ChunkSizeTokens int `toml:"chunk_size_tokens"`
	OverlapTokens   int `toml:"overlap_tokens"`
}

// RetrievalConfig tunes the query path.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

// ProviderConfig selects and configures a model provider.
type ProviderConfig struct {
	// Provider is "openai" or "ollama".
	Provider string `toml:"provider"`

	// Model names the provider model.
	Model string `toml:"model"`

	// BaseURL overrides the provider endpoint. Empty uses the
	// provider default.
	BaseURL string `toml:"base_url"`

	// APIKeyEnv names the environment variable holding the API key.
	// Keys never live in the config file itself.
	APIKeyEnv string `toml:"api_key_env"`

	// BatchSize caps texts per embedding request.
	BatchSize int `toml:"batch_size,omitempty"`

	// RequestsPerSecond paces outgoing requests. Zero disables pacing.
	RequestsPerSecond float64 `toml:"requests_per_second,omitempty"`

	// Dimensions is the expected embedding vector size.
	Dimensions int `toml:"dimensions,omitempty"`
}

// APIKey resolves the provider's API key from the environment.
func (p ProviderConfig) APIKey() string {
	if p.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnv)
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Chunking: ChunkingConfig{
			ChunkSizeTokens: chunking.DefaultChunkSizeTokens,
			OverlapTokens:   chunking.DefaultOverlapTokens,
		},
		Retrieval: RetrievalConfig{
			TopK: services.DefaultTopK,
		},
		Embedding: ProviderConfig{
			Provider:   "openai",
			Model:      "text-embedding-3-small",
			APIKeyEnv:  "OPENAI_API_KEY",
			BatchSize:  openai.DefaultBatchSize,
			Dimensions: 1536,
		},
		LLM: ProviderConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
	}
}

// Load reads the config file from configDir, applying defaults for
// missing fields. If configDir is empty, defaults to ~/.docsift. A
// missing file is not an error; the defaults are returned and the
// path remembered for Save.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".docsift")
	}

	cfg := Default()
	cfg.path = filepath.Join(configDir, "config.toml")

	data, err := os.ReadFile(cfg.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", cfg.path, err)
	}
	return cfg, nil
}

// Save writes the configuration back to its file, creating the config
// directory if needed.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no file path")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (c *Config) Path() string {
	return c.path
}
