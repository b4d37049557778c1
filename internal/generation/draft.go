// Package generation produces the first-pass cover letter draft from the
// resume text, the resolved job posting, and the drafting prompt.
package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/coverletter-agent/internal/llm"
	"github.com/jonathan/coverletter-agent/internal/prompts"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// Generator drafts cover letter body text.
type Generator struct {
	client     llm.Client
	store      *prompts.Store
	strategist *Strategist
}

// NewGenerator creates a Generator. strategist may be nil to skip the
// strategy pre-pass.
func NewGenerator(client llm.Client, store *prompts.Store, strategist *Strategist) *Generator {
	return &Generator{client: client, store: store, strategist: strategist}
}

// Draft generates the cover letter body paragraphs for the given job.
// instructions carries optional job-specific guidance from the user.
func (g *Generator) Draft(ctx context.Context, job *types.JobPosting, resumeText, instructions string) (*types.LetterDraft, error) {
	staticPrompt, _ := g.store.Get()

	var strategySection string
	if g.strategist != nil {
		strategy := g.strategist.Generate(ctx, job, resumeText)
		strategySection = "\n" + strategy.PromptSection() + "\n"
	}

	if instructions == "" {
		instructions = "None provided - use your best judgment based on the job requirements."
	}

	prompt := fmt.Sprintf(`%s

=== CANDIDATE'S RESUME ===
%s

=== TARGET JOB ===
Company: %s
Position: %s

Job Description:
%s
%s
=== SPECIFIC INSTRUCTIONS FOR THIS APPLICATION ===
%s

Now write the cover letter body paragraphs:`,
		staticPrompt, resumeText, job.Company, job.Title, job.Description, strategySection, instructions)

	text, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &llm.GenerationError{Provider: "gemini", Message: "empty draft"}
	}

	return &types.LetterDraft{Text: text, Stage: types.StageDrafted}, nil
}
