package types

// ResumeDocument is the uploaded resume: original bytes plus the text
// extracted for prompting. Created once per request; immutable.
type ResumeDocument struct {
	RawBytes      []byte
	ExtractedText string
	PageCount     int
}
