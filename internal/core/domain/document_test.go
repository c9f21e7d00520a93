package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStatus_Valid(t *testing.T) {
	valid := []DocumentStatus{StatusPending, StatusProcessing, StatusReady, StatusError}
	for _, s := range valid {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	assert.False(t, DocumentStatus("").Valid())
	assert.False(t, DocumentStatus("done").Valid())
}

func TestChunkID(t *testing.T) {
	assert.Equal(t, "doc-1_3_17", ChunkID("doc-1", 3, 17))
	assert.Equal(t, "doc-1_1_0", ChunkID("doc-1", 1, 0))

	// Distinct coordinates produce distinct IDs.
	assert.NotEqual(t, ChunkID("doc-1", 1, 2), ChunkID("doc-1", 2, 1))
}
