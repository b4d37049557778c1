// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/coverletter-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// previewLines caps how much letter text is shown
	previewLines = 12
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobPosting outputs a human-readable summary of the resolved job.
func (p *Printer) PrintJobPosting(job *types.JobPosting) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Source:   %s\n", job.Source))
	if job.URL != "" {
		sb.WriteString(fmt.Sprintf("URL:      %s\n", job.URL))
	}
	sb.WriteString(fmt.Sprintf("Description: %d characters", len(job.Description)))

	p.printBox("RESOLVED JOB POSTING", sb.String())
}

// PrintLetter outputs a preview of the letter at a given stage.
func (p *Printer) PrintLetter(draft *types.LetterDraft) {
	if draft == nil {
		return
	}

	lines := strings.Split(draft.Text, "\n")
	shown := lines
	if len(lines) > previewLines {
		shown = append(lines[:previewLines:previewLines], "...")
	}

	title := fmt.Sprintf("LETTER (%s)", strings.ToUpper(string(draft.Stage)))
	p.printBox(title, strings.Join(shown, "\n"))
}

// PrintOutput outputs the final document summary.
func (p *Printer) PrintOutput(doc *types.OutputDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Filename: %s\n", doc.Filename))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", doc.PageCount))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes", len(doc.PDFBytes)))

	p.printBox("FINISHED DOCUMENT", sb.String())
}
