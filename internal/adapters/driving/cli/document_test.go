package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestDocumentCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range documentCmd.Commands() {
		names[sub.Name()] = true
	}

	assert.True(t, names["create"])
	assert.True(t, names["upload"])
	assert.True(t, names["list"])
	assert.True(t, names["show"])
	assert.True(t, names["delete"])
}

func TestDocumentCreateCmd_RequiresName(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "document", "create")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDocumentCreateCmd_Creates(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "document", "create", "Quarterly Report")

	require.NoError(t, err)
	assert.Contains(t, out, "Created document")
	assert.Contains(t, out, "Quarterly Report")
}

func TestDocumentListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents")
}

func TestIngestCmd_EndToEnd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("First fact. Second fact."), 0600))

	out, err := execute(t, "ingest", "--quiet", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Ingested")

	out, err = execute(t, "document", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "notes")
	assert.Contains(t, out, "ready")
}

func TestDocumentDeleteCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "document", "delete", "nonexistent")

	assert.Error(t, err)
}
