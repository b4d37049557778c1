// Package resume extracts plain text from an uploaded resume PDF for
// prompting. The original bytes are kept untouched for the final merge.
package resume

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/coverletter-agent/internal/types"
)

// Extractor reads resume PDFs.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the PDF bytes into a ResumeDocument. Fails with
// *ExtractionError if the PDF cannot be read or contains no text.
func (e *Extractor) Extract(_ context.Context, data []byte) (*types.ResumeDocument, error) {
	if len(data) == 0 {
		return nil, &ExtractionError{Message: "empty file"}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Message: "unreadable PDF", Cause: err}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, &ExtractionError{Message: "text extraction failed", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, &ExtractionError{Message: "text extraction failed", Cause: err}
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return nil, &ExtractionError{Message: "no extractable text"}
	}

	return &types.ResumeDocument{
		RawBytes:      data,
		ExtractedText: text,
		PageCount:     reader.NumPage(),
	}, nil
}
