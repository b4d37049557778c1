package resume

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Empty(t *testing.T) {
	extractor := NewExtractor()

	_, err := extractor.Extract(context.Background(), nil)
	require.Error(t, err)

	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Contains(t, exErr.Message, "empty")
}

func TestExtract_NotAPDF(t *testing.T) {
	extractor := NewExtractor()

	_, err := extractor.Extract(context.Background(), []byte("this is plain text, not a pdf"))
	require.Error(t, err)

	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
}

func TestExtract_TruncatedPDF(t *testing.T) {
	extractor := NewExtractor()

	// A PDF header with no body or xref table
	_, err := extractor.Extract(context.Background(), []byte("%PDF-1.7\n"))
	require.Error(t, err)

	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
}
