package generation

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/coverletter-agent/internal/llm"
	"github.com/jonathan/coverletter-agent/internal/prompts"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// Strategy is a pre-computed writing plan for the letter: the job's key
// requirements paired with the strongest matching evidence from the resume.
type Strategy struct {
	TopRequirements  []string `json:"top_requirements"`
	MatchingEvidence []string `json:"matching_evidence"`
	NarrativeHook    string   `json:"narrative_hook"`
	ToneSuggestion   string   `json:"tone_suggestion"`
}

const strategySchema = `{
	"type": "object",
	"required": ["top_requirements", "matching_evidence", "narrative_hook", "tone_suggestion"],
	"properties": {
		"top_requirements": {"type": "array", "items": {"type": "string"}, "minItems": 1},
		"matching_evidence": {"type": "array", "items": {"type": "string"}, "minItems": 1},
		"narrative_hook": {"type": "string", "minLength": 1},
		"tone_suggestion": {"type": "string", "minLength": 1}
	}
}`

// fallbackStrategy is used when strategy generation fails. The pipeline
// keeps going; the drafter just works without a plan.
func fallbackStrategy() *Strategy {
	return &Strategy{
		TopRequirements:  []string{"Relevant Experience"},
		MatchingEvidence: []string{"See resume for details"},
		NarrativeHook:    "Open with the candidate's strongest relevant result.",
		ToneSuggestion:   "Professional",
	}
}

// Strategist runs the strategy pre-pass against the drafting model.
type Strategist struct {
	client llm.Client
}

// NewStrategist creates a Strategist.
func NewStrategist(client llm.Client) *Strategist {
	return &Strategist{client: client}
}

// Generate analyzes the job against the resume and returns a writing
// strategy. Failures never abort the pipeline; a neutral fallback is
// returned instead.
func (s *Strategist) Generate(ctx context.Context, job *types.JobPosting, resumeText string) *Strategy {
	prompt := prompts.Format(prompts.MustGet(prompts.KeyStrategy), map[string]string{
		"Resume":      resumeText,
		"Title":       job.Title,
		"Company":     job.Company,
		"Description": job.Description,
	})

	raw, err := s.client.GenerateJSON(ctx, prompt)
	if err != nil {
		log.Printf("strategy generation failed, using fallback: %v", err)
		return fallbackStrategy()
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(strategySchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil || !result.Valid() {
		log.Printf("strategy response failed schema validation, using fallback")
		return fallbackStrategy()
	}

	var strategy Strategy
	if err := json.Unmarshal([]byte(raw), &strategy); err != nil {
		log.Printf("strategy response unmarshal failed, using fallback: %v", err)
		return fallbackStrategy()
	}
	return &strategy
}

// PromptSection renders the strategy as a prompt block for the drafter.
func (s *Strategy) PromptSection() string {
	var b strings.Builder
	b.WriteString("=== APPLICATION STRATEGY ===\n")
	b.WriteString("Key requirements to address, with the evidence to use:\n")
	for i, req := range s.TopRequirements {
		b.WriteString("- ")
		b.WriteString(req)
		if i < len(s.MatchingEvidence) {
			b.WriteString(": ")
			b.WriteString(s.MatchingEvidence[i])
		}
		b.WriteString("\n")
	}
	b.WriteString("Narrative hook: ")
	b.WriteString(s.NarrativeHook)
	b.WriteString("\nTone: ")
	b.WriteString(s.ToneSuggestion)
	return b.String()
}
