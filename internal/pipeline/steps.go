package pipeline

// Step identifies one state of the generation pipeline. Step values are
// wire-visible: they appear verbatim in progress events.
type Step string

const (
	StepReadingResume Step = "reading_resume"
	StepFetchingJob   Step = "fetching_job"
	StepGenerating    Step = "generating"
	StepHumanizing    Step = "humanizing"
	StepRendering     Step = "rendering"
	StepCreatingPDF   Step = "creating_pdf"
	StepMerging       Step = "merging"
	StepComplete      Step = "complete"
	StepError         Step = "error"
)

// Order is the fixed forward sequence of a successful run, excluding the
// terminal complete step. Any step may transition directly to error.
var Order = []Step{
	StepReadingResume,
	StepFetchingJob,
	StepGenerating,
	StepHumanizing,
	StepRendering,
	StepCreatingPDF,
	StepMerging,
}

// stepMessages are the human-readable progress lines shown to the user.
var stepMessages = map[Step]string{
	StepReadingResume: "Reading resume...",
	StepFetchingJob:   "Fetching job details...",
	StepGenerating:    "Generating with AI...",
	StepHumanizing:    "Humanizing text...",
	StepRendering:     "Rendering HTML...",
	StepCreatingPDF:   "Creating PDF...",
	StepMerging:       "Merging documents...",
}
