package pdf

import (
	"bytes"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// pageNumberDesc styles the stamped page numbers: small gray text at the
// bottom center of each page.
const pageNumberDesc = "fontname:Helvetica, points:9, scalefactor:1 abs, rotation:0, position:bc, offset:0 15, fillcolor:#666666"

// MergeResult is the combined application document.
type MergeResult struct {
	PDF         []byte
	LetterPages int
	ResumePages int
	TotalPages  int
}

// Merge concatenates the letter PDF and the resume PDF, letter first, and
// stamps continuous page numbers across the combined document. The resume
// page content itself is not re-encoded; numbering is an overlay.
func Merge(letter, resume []byte) (*MergeResult, error) {
	if len(letter) == 0 {
		return nil, &MergeError{Message: "letter document is empty"}
	}
	if len(resume) == 0 {
		return nil, &MergeError{Message: "resume document is empty"}
	}

	conf := model.NewDefaultConfiguration()

	letterPages, err := api.PageCount(bytes.NewReader(letter), conf)
	if err != nil {
		return nil, &MergeError{Message: "unreadable letter document", Cause: err}
	}
	resumePages, err := api.PageCount(bytes.NewReader(resume), conf)
	if err != nil {
		return nil, &MergeError{Message: "unreadable resume document", Cause: err}
	}

	var merged bytes.Buffer
	sources := []io.ReadSeeker{bytes.NewReader(letter), bytes.NewReader(resume)}
	if err := api.MergeRaw(sources, &merged, false, conf); err != nil {
		return nil, &MergeError{Message: "concatenation failed", Cause: err}
	}

	stamped, err := stampPageNumbers(merged.Bytes(), conf)
	if err != nil {
		return nil, err
	}

	return &MergeResult{
		PDF:         stamped,
		LetterPages: letterPages,
		ResumePages: resumePages,
		TotalPages:  letterPages + resumePages,
	}, nil
}

// stampPageNumbers overlays "page/total" on every page of the document.
func stampPageNumbers(doc []byte, conf *model.Configuration) ([]byte, error) {
	wm, err := api.TextWatermark("%p/%P", pageNumberDesc, true, false, types.POINTS)
	if err != nil {
		return nil, &MergeError{Message: "invalid page number stamp", Cause: err}
	}

	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(doc), &out, nil, wm, conf); err != nil {
		return nil, &MergeError{Message: "page numbering failed", Cause: err}
	}
	return out.Bytes(), nil
}
