package server

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/coverletter-agent/internal/app"
	"github.com/jonathan/coverletter-agent/internal/config"
	"github.com/jonathan/coverletter-agent/internal/llm"
	"github.com/jonathan/coverletter-agent/internal/pipeline"
	"github.com/jonathan/coverletter-agent/internal/prompts"
	"github.com/jonathan/coverletter-agent/internal/storage"
	"github.com/jonathan/coverletter-agent/internal/types"
)

type fakeStages struct {
	store    *storage.Store
	draftErr error
}

func (f *fakeStages) Extract(_ context.Context, data []byte) (*types.ResumeDocument, error) {
	return &types.ResumeDocument{RawBytes: data, ExtractedText: "resume text", PageCount: 1}, nil
}

func (f *fakeStages) Resolve(_ context.Context, req types.JobRequest) (*types.JobPosting, error) {
	return &types.JobPosting{Title: req.Title, Company: req.Company, Description: req.Description, Source: types.SourceManual}, nil
}

func (f *fakeStages) Draft(_ context.Context, _ *types.JobPosting, _, _ string) (*types.LetterDraft, error) {
	if f.draftErr != nil {
		return nil, f.draftErr
	}
	return &types.LetterDraft{Text: "draft", Stage: types.StageDrafted}, nil
}

func (f *fakeStages) Rewrite(_ context.Context, _ *types.LetterDraft) (*types.LetterDraft, error) {
	return &types.LetterDraft{Text: "humanized", Stage: types.StageHumanized}, nil
}

func (f *fakeStages) RenderLetter(_ *types.LetterDraft) (*types.RenderedLetter, error) {
	return &types.RenderedLetter{HTML: "<html></html>"}, nil
}

func (f *fakeStages) Convert(_ context.Context, _ string) ([]byte, error) {
	return []byte("%PDF-letter"), nil
}

func (f *fakeStages) Compose(_ []byte, _ *types.ResumeDocument, job *types.JobPosting) (*types.OutputDocument, error) {
	handle, err := f.store.Save([]byte("%PDF-merged"), "jane_doe_acme.pdf")
	if err != nil {
		return nil, err
	}
	return &types.OutputDocument{PDFBytes: []byte("%PDF-merged"), PageCount: 2, Handle: handle, Filename: "jane_doe_acme.pdf"}, nil
}

func newTestServer(t *testing.T, stages *fakeStages) *Server {
	t.Helper()

	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	stages.store = store

	promptStore, err := prompts.NewStore("")
	require.NoError(t, err)

	runtime := &app.Runtime{
		Config: &config.Config{
			GeminiAPIKey: "test-gemini-key",
			Port:         config.DefaultPort,
		},
		Store:   store,
		Prompts: promptStore,
		Pipeline: pipeline.New(pipeline.Stages{
			Extract:  stages,
			Resolve:  stages,
			Draft:    stages,
			Humanize: stages,
			Render:   stages,
			Convert:  stages,
			Compose:  stages,
		}),
	}
	return New(runtime)
}

func (s *Server) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func generateRequest(t *testing.T, resume []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if resume != nil {
		fw, err := mw.CreateFormFile("resume", "resume.pdf")
		require.NoError(t, err)
		_, err = fw.Write(resume)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/generate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func manualJobFields() map[string]string {
	return map[string]string{
		"job_title":       "Backend Engineer",
		"company_name":    "Acme",
		"job_description": "Build Go services.",
	}
}

func TestGenerate_StreamsProgressAndComplete(t *testing.T) {
	s := newTestServer(t, &fakeStages{})

	rec := s.serve(generateRequest(t, []byte("%PDF-resume"), manualJobFields()))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	for _, step := range pipeline.Order {
		assert.Contains(t, body, `"step":"`+string(step)+`"`)
	}
	assert.Contains(t, body, "event: complete")
	assert.Contains(t, body, `"download_url":"/api/download/`)
	assert.Contains(t, body, `"filename":"jane_doe_acme.pdf"`)
	assert.Contains(t, body, `"job_title":"Backend Engineer"`)
	assert.NotContains(t, body, "event: error")
}

func TestGenerate_MissingJobDetails(t *testing.T) {
	s := newTestServer(t, &fakeStages{})

	rec := s.serve(generateRequest(t, []byte("%PDF-resume"), map[string]string{
		"job_title": "Backend Engineer", // company and description missing, no URL
	}))

	body := rec.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, "Provide either a job URL or manual job details")
	assert.NotContains(t, body, "event: progress")
}

func TestGenerate_MissingResume(t *testing.T) {
	s := newTestServer(t, &fakeStages{})

	rec := s.serve(generateRequest(t, nil, manualJobFields()))

	body := rec.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, "Attach your resume")
}

func TestGenerate_StageFailure(t *testing.T) {
	s := newTestServer(t, &fakeStages{
		draftErr: &llm.GenerationError{Provider: "gemini", Message: "quota exceeded"},
	})

	rec := s.serve(generateRequest(t, []byte("%PDF-resume"), manualJobFields()))

	body := rec.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, "AI generation failed")
	assert.NotContains(t, body, "event: complete")
}

func TestDownload(t *testing.T) {
	s := newTestServer(t, &fakeStages{})

	handle, err := s.runtime.Store.Save([]byte("%PDF-data"), "jane_doe_acme.pdf")
	require.NoError(t, err)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/download/"+handle, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "jane_doe_acme.pdf")
	assert.Equal(t, "%PDF-data", rec.Body.String())
}

func TestDownload_UnknownHandle(t *testing.T) {
	s := newTestServer(t, &fakeStages{})

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/download/4b2a3c1d-0000-0000-0000-000000000000", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownload_TraversalAttempt(t *testing.T) {
	s := newTestServer(t, &fakeStages{})

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/download/..%2f..%2fetc%2fpasswd", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPromptRoundTrip(t *testing.T) {
	s := newTestServer(t, &fakeStages{})

	newPrompt := strings.Repeat("write a thoughtful letter ", 5)
	rec := s.serve(httptest.NewRequest(http.MethodPut, "/api/prompt",
		strings.NewReader(`{"prompt": "`+newPrompt+`"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.serve(httptest.NewRequest(http.MethodGet, "/api/prompt", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "write a thoughtful letter")
}

func TestSavePrompt_TooShort(t *testing.T) {
	s := newTestServer(t, &fakeStages{})

	rec := s.serve(httptest.NewRequest(http.MethodPut, "/api/prompt",
		strings.NewReader(`{"prompt": "too short"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Prompt too short")
}

func TestSavePrompt_InvalidJSON(t *testing.T) {
	s := newTestServer(t, &fakeStages{})

	rec := s.serve(httptest.NewRequest(http.MethodPut, "/api/prompt", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeStages{})

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"gemini_configured":true`)
	assert.Contains(t, rec.Body.String(), `"openai_configured":false`)
}
