// Package app wires the configured components into a runnable pipeline.
// Both the HTTP server and the one-shot CLI build their runtime here so
// the two entry points cannot drift apart.
package app

import (
	"context"
	"fmt"

	"github.com/jonathan/coverletter-agent/internal/config"
	"github.com/jonathan/coverletter-agent/internal/generation"
	"github.com/jonathan/coverletter-agent/internal/humanize"
	"github.com/jonathan/coverletter-agent/internal/jobinfo"
	"github.com/jonathan/coverletter-agent/internal/llm"
	"github.com/jonathan/coverletter-agent/internal/pdf"
	"github.com/jonathan/coverletter-agent/internal/pipeline"
	"github.com/jonathan/coverletter-agent/internal/prompts"
	"github.com/jonathan/coverletter-agent/internal/rendering"
	"github.com/jonathan/coverletter-agent/internal/resume"
	"github.com/jonathan/coverletter-agent/internal/storage"
)

// Runtime holds the assembled application components.
type Runtime struct {
	Config   *config.Config
	Store    *storage.Store
	Prompts  *prompts.Store
	Pipeline *pipeline.Pipeline

	closers []func() error
}

// New builds a Runtime from a validated configuration.
func New(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	store, err := storage.NewStore(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	promptStore, err := prompts.NewStore(cfg.PromptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt store: %w", err)
	}

	gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	openai, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if err != nil {
		gemini.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	renderer, err := rendering.NewRenderer(cfg.Sender)
	if err != nil {
		gemini.Close() //nolint:errcheck
		return nil, err
	}

	var strategist *generation.Strategist
	if cfg.UseStrategy {
		strategist = generation.NewStrategist(gemini)
	}

	stages := pipeline.Stages{
		Extract:  resume.NewExtractor(),
		Resolve:  jobinfo.NewResolver(cfg.UseBrowser),
		Draft:    generation.NewGenerator(gemini, promptStore, strategist),
		Humanize: humanize.NewHumanizer(openai),
		Render:   renderer,
		Convert:  pdf.NewConverter(),
		Compose:  pdf.NewComposer(store, cfg.Slug()),
	}

	return &Runtime{
		Config:   cfg,
		Store:    store,
		Prompts:  promptStore,
		Pipeline: pipeline.New(stages),
		closers:  []func() error{gemini.Close, openai.Close},
	}, nil
}

// Close releases provider clients.
func (r *Runtime) Close() {
	for _, fn := range r.closers {
		fn() //nolint:errcheck
	}
}
