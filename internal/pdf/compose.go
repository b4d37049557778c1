package pdf

import (
	"fmt"

	"github.com/jonathan/coverletter-agent/internal/config"
	"github.com/jonathan/coverletter-agent/internal/storage"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// Composer produces the final application document: letter plus resume,
// page-numbered, stored for download.
type Composer struct {
	store      *storage.Store
	senderSlug string
}

// NewComposer creates a Composer. senderSlug is the filename-safe sender
// name used in download filenames.
func NewComposer(store *storage.Store, senderSlug string) *Composer {
	return &Composer{store: store, senderSlug: senderSlug}
}

// Compose merges the letter PDF with the untouched resume bytes, stamps
// page numbers, and stores the result under a fresh download handle.
func (c *Composer) Compose(letterPDF []byte, resume *types.ResumeDocument, job *types.JobPosting) (*types.OutputDocument, error) {
	result, err := Merge(letterPDF, resume.RawBytes)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s_%s.pdf", c.senderSlug, config.Slugify(job.Company))

	handle, err := c.store.Save(result.PDF, filename)
	if err != nil {
		return nil, &MergeError{Message: "failed to store merged document", Cause: err}
	}

	return &types.OutputDocument{
		PDFBytes:  result.PDF,
		PageCount: result.TotalPages,
		Handle:    handle,
		Filename:  filename,
	}, nil
}
