package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/docsift/docsift/internal/adapters/driven/config/file"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_Flags(t *testing.T) {
	flag := askCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag)
	assert.Equal(t, "k", flag.Shorthand)

	require.NotNil(t, askCmd.Flags().Lookup("document"))
	require.NotNil(t, askCmd.Flags().Lookup("json"))
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "ask")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_AnswersWithCitations(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "facts.txt")
	require.NoError(t, os.WriteFile(path, []byte("The sky is blue. Water is wet."), 0600))
	_, err := execute(t, "ingest", "--quiet", path)
	require.NoError(t, err)

	out, err := execute(t, "ask", "what color is the sky?")

	require.NoError(t, err)
	assert.Contains(t, out, "An answer grounded in the documents.")
	assert.Contains(t, out, "Sources:")
	assert.Contains(t, out, "facts")
}

func TestAskCmd_ConfigTopK(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	prevCfg := cfg
	cfg = &configfile.Config{Retrieval: configfile.RetrievalConfig{TopK: 1}}
	defer func() {
		cfg = prevCfg
		askTopK = 0
	}()

	// Three ten-word sentences exceed the 20-token test chunk size,
	// so ingestion produces more than one chunk.
	text := "Alpha bravo charlie delta echo foxtrot golf hotel india juliett. " +
		"Kilo lima mike november oscar papa quebec romeo sierra tango. " +
		"Uniform victor whiskey xray yankee zulu nectar ocean plume quartz."
	path := filepath.Join(t.TempDir(), "phonetic.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	_, err := execute(t, "ingest", "--quiet", path)
	require.NoError(t, err)

	// Without the flag, the configured top_k caps the citations.
	out, err := execute(t, "ask", "what comes after alpha?")
	require.NoError(t, err)
	assert.Contains(t, out, "[1]")
	assert.NotContains(t, out, "[2]")

	// The flag overrides the config.
	out, err = execute(t, "ask", "--top-k", "2", "what comes after alpha?")
	require.NoError(t, err)
	assert.Contains(t, out, "[2]")
}

func TestAskCmd_NoDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "ask", "anything?")

	require.NoError(t, err)
	assert.Contains(t, out, "could not find any relevant content")
}

func TestHistoryCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No queries yet.")
}

func TestHistoryCmd_ListsQuestions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "ask", "first question?")
	require.NoError(t, err)

	out, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "first question?")
}
