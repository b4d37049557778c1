// Package pipeline orchestrates the full generation flow: resume text
// extraction, job resolution, drafting, humanizing, rendering, PDF
// conversion, and the final merge. The orchestrator is the only component
// aware of the full step sequence; individual stages are not.
package pipeline

import (
	"context"
	"errors"
	"log"

	"github.com/jonathan/coverletter-agent/internal/fetch"
	"github.com/jonathan/coverletter-agent/internal/jobinfo"
	"github.com/jonathan/coverletter-agent/internal/llm"
	"github.com/jonathan/coverletter-agent/internal/pdf"
	"github.com/jonathan/coverletter-agent/internal/rendering"
	"github.com/jonathan/coverletter-agent/internal/resume"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// Stage interfaces. Each matches the concrete implementation in its own
// package; the pipeline depends only on these so tests can substitute fakes.
type (
	// Extractor pulls plain text out of the uploaded resume PDF
	Extractor interface {
		Extract(ctx context.Context, data []byte) (*types.ResumeDocument, error)
	}
	// Resolver turns a job request into a validated posting
	Resolver interface {
		Resolve(ctx context.Context, req types.JobRequest) (*types.JobPosting, error)
	}
	// Drafter writes the first-pass letter body
	Drafter interface {
		Draft(ctx context.Context, job *types.JobPosting, resumeText, instructions string) (*types.LetterDraft, error)
	}
	// Humanizer rewrites the draft through a second provider
	Humanizer interface {
		Rewrite(ctx context.Context, draft *types.LetterDraft) (*types.LetterDraft, error)
	}
	// Renderer produces the print-ready HTML document
	Renderer interface {
		RenderLetter(draft *types.LetterDraft) (*types.RenderedLetter, error)
	}
	// Converter renders HTML to PDF bytes
	Converter interface {
		Convert(ctx context.Context, html string) ([]byte, error)
	}
	// Composer merges letter and resume and stores the result
	Composer interface {
		Compose(letterPDF []byte, resume *types.ResumeDocument, job *types.JobPosting) (*types.OutputDocument, error)
	}
)

// Stages bundles the pipeline's stage implementations.
type Stages struct {
	Extract  Extractor
	Resolve  Resolver
	Draft    Drafter
	Humanize Humanizer
	Render   Renderer
	Convert  Converter
	Compose  Composer
}

// ProgressEvent is one update emitted while a run advances.
type ProgressEvent struct {
	Step    Step   `json:"step"`
	Message string `json:"message,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// ProgressCallback receives progress events. Callbacks run synchronously
// on the pipeline goroutine; slow consumers stall the run.
type ProgressCallback func(ProgressEvent)

// CompletePayload rides on the terminal complete event.
type CompletePayload struct {
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
	Handle   string `json:"handle"`
	Filename string `json:"filename"`
	Pages    int    `json:"pages"`
}

// ErrorPayload rides on the terminal error event.
type ErrorPayload struct {
	Error string `json:"error"`
}

// RunOptions carries one generation request.
type RunOptions struct {
	Resume       []byte
	Job          types.JobRequest
	Instructions string
	OnProgress   ProgressCallback
}

// Result is the outcome of a successful run.
type Result struct {
	Job    *types.JobPosting
	Letter *types.LetterDraft
	Output *types.OutputDocument
}

// Pipeline drives the stages in their fixed order.
type Pipeline struct {
	stages Stages
}

// New creates a Pipeline over the given stages.
func New(stages Stages) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes the pipeline. Every run emits exactly one terminal event:
// complete with the output metadata, or error with a user-facing message.
// The returned error is the underlying stage failure.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	emit := opts.OnProgress
	if emit == nil {
		emit = func(ProgressEvent) {}
	}
	progress := func(step Step) {
		emit(ProgressEvent{Step: step, Message: stepMessages[step]})
	}
	fail := func(step Step, err error) (*Result, error) {
		log.Printf("pipeline failed at %s: %v", step, err)
		emit(ProgressEvent{Step: StepError, Payload: ErrorPayload{Error: friendlyError(err)}})
		return nil, err
	}

	progress(StepReadingResume)
	resumeDoc, err := p.stages.Extract.Extract(ctx, opts.Resume)
	if err != nil {
		return fail(StepReadingResume, err)
	}

	progress(StepFetchingJob)
	job, err := p.stages.Resolve.Resolve(ctx, opts.Job)
	if err != nil {
		return fail(StepFetchingJob, err)
	}

	progress(StepGenerating)
	draft, err := p.stages.Draft.Draft(ctx, job, resumeDoc.ExtractedText, opts.Instructions)
	if err != nil {
		return fail(StepGenerating, err)
	}

	progress(StepHumanizing)
	humanized, err := p.stages.Humanize.Rewrite(ctx, draft)
	if err != nil {
		return fail(StepHumanizing, err)
	}

	progress(StepRendering)
	letter, err := p.stages.Render.RenderLetter(humanized)
	if err != nil {
		return fail(StepRendering, err)
	}

	progress(StepCreatingPDF)
	letterPDF, err := p.stages.Convert.Convert(ctx, letter.HTML)
	if err != nil {
		return fail(StepCreatingPDF, err)
	}

	progress(StepMerging)
	output, err := p.stages.Compose.Compose(letterPDF, resumeDoc, job)
	if err != nil {
		return fail(StepMerging, err)
	}

	emit(ProgressEvent{Step: StepComplete, Payload: CompletePayload{
		JobTitle: job.Title,
		Company:  job.Company,
		Handle:   output.Handle,
		Filename: output.Filename,
		Pages:    output.PageCount,
	}})

	return &Result{Job: job, Letter: humanized, Output: output}, nil
}

// friendlyError maps stage failures to the messages shown to end users.
// The underlying error still goes to the log.
func friendlyError(err error) string {
	var (
		extractErr  *resume.ExtractionError
		fetchErr    *jobinfo.FetchError
		validateErr *jobinfo.ValidationError
		pageErr     *fetch.Error
		genErr      *llm.GenerationError
		tmplErr     *rendering.TemplateError
		renderErr   *pdf.RenderError
		mergeErr    *pdf.MergeError
	)

	switch {
	case errors.As(err, &extractErr):
		return "Couldn't read your resume. Please make sure it's a valid PDF file."
	case errors.As(err, &fetchErr), errors.As(err, &pageErr):
		return "Couldn't fetch job details from that URL. Try pasting the job description manually instead."
	case errors.As(err, &validateErr):
		return "Job details are incomplete. Provide a URL or fill in title, company, and description."
	case errors.As(err, &genErr):
		if genErr.Provider == "openai" {
			return "Text humanization failed. Please try again."
		}
		return "AI generation failed. Please try again in a moment."
	case errors.As(err, &tmplErr):
		return "Failed to create the cover letter. Please try again."
	case errors.As(err, &renderErr):
		return "PDF creation failed. Please try again."
	case errors.As(err, &mergeErr):
		return "Failed to merge documents. Please try again."
	}
	return "An error occurred. Please try again."
}
