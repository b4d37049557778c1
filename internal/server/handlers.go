package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/coverletter-agent/internal/config"
	"github.com/jonathan/coverletter-agent/internal/pipeline"
	"github.com/jonathan/coverletter-agent/internal/storage"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// handleGenerate runs the full pipeline for one request, streaming
// progress as Server-Sent Events. The connection stays open until the
// pipeline emits its terminal event.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		sse.WriteError("Upload too large or malformed. Resumes are limited to 10 MB.")
		return
	}

	resumeBytes, err := readResumeUpload(r)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	job := types.JobRequest{
		URL:         r.FormValue("job_url"),
		Title:       r.FormValue("job_title"),
		Company:     r.FormValue("company_name"),
		Description: r.FormValue("job_description"),
	}
	if err := job.Validate(); err != nil {
		sse.WriteError("Provide either a job URL or manual job details")
		return
	}

	_, runErr := s.runtime.Pipeline.Run(r.Context(), pipeline.RunOptions{
		Resume:       resumeBytes,
		Job:          job,
		Instructions: r.FormValue("instructions"),
		OnProgress:   func(e pipeline.ProgressEvent) { s.forwardEvent(sse, e) },
	})
	if runErr != nil {
		// The terminal error event already went out via the callback
		log.Printf("generate request failed: %v", runErr)
	}
}

// forwardEvent translates a pipeline event into its SSE representation.
// The internal download handle becomes a URL here; clients never see
// handles directly.
func (s *Server) forwardEvent(sse *SSEWriter, e pipeline.ProgressEvent) {
	switch e.Step {
	case pipeline.StepComplete:
		payload, ok := e.Payload.(pipeline.CompletePayload)
		if !ok {
			sse.WriteError("An error occurred. Please try again.")
			return
		}
		sse.WriteEvent("complete", map[string]any{ //nolint:errcheck
			"success":      true,
			"download_url": "/api/download/" + payload.Handle,
			"filename":     payload.Filename,
			"job_title":    payload.JobTitle,
			"company":      payload.Company,
		})
	case pipeline.StepError:
		sse.WriteEvent("error", e.Payload) //nolint:errcheck
	default:
		sse.WriteProgress(string(e.Step), e.Message)
	}
}

// readResumeUpload pulls the resume PDF out of the multipart form.
func readResumeUpload(r *http.Request) ([]byte, error) {
	file, header, err := r.FormFile("resume")
	if err != nil {
		return nil, fmt.Errorf("Attach your resume as a PDF file")
	}
	defer file.Close()

	if header.Size == 0 {
		return nil, fmt.Errorf("The uploaded resume file is empty")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("Failed to read the uploaded resume")
	}
	return data, nil
}

// handleDownload serves a finished PDF by its handle.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")

	f, entry, err := s.runtime.Store.Open(handle)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "File not found")
			return
		}
		log.Printf("download failed for handle %s: %v", handle, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to open file")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", entry.Filename))
	if _, err := io.Copy(w, f); err != nil {
		log.Printf("download stream interrupted for handle %s: %v", handle, err)
	}
}

// handleGetPrompt returns the current drafting prompt.
func (s *Server) handleGetPrompt(w http.ResponseWriter, _ *http.Request) {
	text, version := s.runtime.Prompts.Get()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"prompt":  text,
		"version": version,
	})
}

// handleSavePrompt replaces the drafting prompt.
func (s *Server) handleSavePrompt(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if len(body.Prompt) < config.MinPromptLength {
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Prompt too short (minimum %d characters)", config.MinPromptLength))
		return
	}

	if err := s.runtime.Prompts.Set(body.Prompt); err != nil {
		log.Printf("failed to save prompt: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save prompt")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
