// Package humanize rewrites a drafted letter through a second provider so
// the final text carries a different linguistic fingerprint than the draft.
package humanize

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/coverletter-agent/internal/llm"
	"github.com/jonathan/coverletter-agent/internal/prompts"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// Humanizer rewrites drafted letters.
type Humanizer struct {
	client llm.Client
}

// NewHumanizer creates a Humanizer.
func NewHumanizer(client llm.Client) *Humanizer {
	return &Humanizer{client: client}
}

// Rewrite takes a drafted letter and returns a humanized copy. The input
// draft is not modified.
func (h *Humanizer) Rewrite(ctx context.Context, draft *types.LetterDraft) (*types.LetterDraft, error) {
	if draft == nil || strings.TrimSpace(draft.Text) == "" {
		return nil, &llm.GenerationError{Provider: "openai", Message: "nothing to rewrite"}
	}
	if draft.Stage != types.StageDrafted {
		return nil, fmt.Errorf("expected a drafted letter, got stage %q", draft.Stage)
	}

	prompt := fmt.Sprintf(`%s

=== COVER LETTER TO REWRITE ===
%s

Now rewrite this cover letter with more natural, human-like variation:`,
		prompts.MustGet(prompts.KeyHumanize), draft.Text)

	text, err := h.client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &llm.GenerationError{Provider: "openai", Message: "empty rewrite"}
	}

	return &types.LetterDraft{Text: text, Stage: types.StageHumanized}, nil
}
