package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/coverletter-agent/internal/types"
)

func TestPrintJobPosting(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobPosting(&types.JobPosting{
		Title:       "Senior Engineer",
		Company:     "Acme Corp",
		Description: "Build things.",
		Source:      types.SourceURL,
		URL:         "https://example.com/job",
	})
	output := buf.String()

	assert.Contains(t, output, "RESOLVED JOB POSTING")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Senior Engineer")
	assert.Contains(t, output, "https://example.com/job")
}

func TestPrintLetter_TruncatesLongText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	text := strings.Repeat("line\n", 30)
	p.PrintLetter(&types.LetterDraft{Text: strings.TrimSpace(text), Stage: types.StageHumanized})
	output := buf.String()

	assert.Contains(t, output, "LETTER (HUMANIZED)")
	assert.Contains(t, output, "...")
}

func TestPrintNilValues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobPosting(nil)
	p.PrintLetter(nil)
	p.PrintOutput(nil)

	assert.Empty(t, buf.String())
}
