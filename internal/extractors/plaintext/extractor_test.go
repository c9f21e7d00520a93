package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift/docsift/internal/core/domain"
)

func TestExtract_SinglePage(t *testing.T) {
	e := New()

	pages, err := e.Extract(context.Background(), "notes.txt", []byte("Some text.\n\nSecond paragraph."))

	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, "Some text.\n\nSecond paragraph.", pages[0].Text)
}

func TestExtract_FormFeedPages(t *testing.T) {
	e := New()

	pages, err := e.Extract(context.Background(), "notes.txt", []byte("page one\fpage two"))

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, "page two", pages[1].Text)
}

func TestExtract_TripleNewlinePages(t *testing.T) {
	e := New()

	pages, err := e.Extract(context.Background(), "notes.md", []byte("section one\n\n\nsection two"))

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "section one", pages[0].Text)
	assert.Equal(t, "section two", pages[1].Text)
}

func TestExtract_BlankSegmentKeepsNumbering(t *testing.T) {
	e := New()

	pages, err := e.Extract(context.Background(), "notes.txt", []byte("one\f \fthree"))

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 3, pages[1].Number)
}

func TestExtract_EmptyData(t *testing.T) {
	e := New()

	_, err := e.Extract(context.Background(), "notes.txt", nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_WhitespaceOnly(t *testing.T) {
	e := New()

	pages, err := e.Extract(context.Background(), "notes.txt", []byte("   \n \t "))

	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".txt", ".md", ".text"}, New().SupportedExtensions())
}
