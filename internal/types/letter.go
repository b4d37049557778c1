package types

import "fmt"

// DraftStage tracks how far a cover letter draft has progressed
type DraftStage string

const (
	// StageDrafted is the first AI-produced text, before rewriting
	StageDrafted DraftStage = "drafted"
	// StageHumanized is the text after the second rewrite pass
	StageHumanized DraftStage = "humanized"
)

// LetterDraft is a cover letter body at a known stage.
// The humanizer replaces a draft with a new value; drafts are never mutated.
type LetterDraft struct {
	Text  string     `json:"text"`
	Stage DraftStage `json:"stage"`
}

// Validate checks the draft has text and a known stage
func (d *LetterDraft) Validate() error {
	if d.Text == "" {
		return fmt.Errorf("letter draft: text is empty")
	}
	if d.Stage != StageDrafted && d.Stage != StageHumanized {
		return fmt.Errorf("letter draft: unknown stage %q", d.Stage)
	}
	return nil
}

// RenderedLetter is the HTML document derived from a humanized draft
type RenderedLetter struct {
	HTML string `json:"html"`
}
