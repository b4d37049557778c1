package humanize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/coverletter-agent/internal/llm"
	"github.com/jonathan/coverletter-agent/internal/types"
)

type fakeClient struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeClient) GenerateText(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) Model() string { return "fake-model" }
func (f *fakeClient) Close() error  { return nil }

func TestRewrite(t *testing.T) {
	client := &fakeClient{response: "A letter that sounds like a person wrote it."}
	h := NewHumanizer(client)

	draft := &types.LetterDraft{Text: "A stiff AI-sounding letter.", Stage: types.StageDrafted}
	out, err := h.Rewrite(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, types.StageHumanized, out.Stage)
	assert.Equal(t, "A letter that sounds like a person wrote it.", out.Text)
	assert.Contains(t, client.lastPrompt, "A stiff AI-sounding letter.")

	// Input draft untouched
	assert.Equal(t, types.StageDrafted, draft.Stage)
	assert.Equal(t, "A stiff AI-sounding letter.", draft.Text)
}

func TestRewrite_EmptyDraft(t *testing.T) {
	h := NewHumanizer(&fakeClient{})

	_, err := h.Rewrite(context.Background(), &types.LetterDraft{Text: "  ", Stage: types.StageDrafted})
	require.Error(t, err)

	var genErr *llm.GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestRewrite_WrongStage(t *testing.T) {
	h := NewHumanizer(&fakeClient{response: "text"})

	_, err := h.Rewrite(context.Background(), &types.LetterDraft{Text: "already done", Stage: types.StageHumanized})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage")
}

func TestRewrite_ProviderError(t *testing.T) {
	client := &fakeClient{err: &llm.GenerationError{Provider: "openai", Message: "request failed", Cause: errors.New("timeout")}}
	h := NewHumanizer(client)

	_, err := h.Rewrite(context.Background(), &types.LetterDraft{Text: "draft", Stage: types.StageDrafted})
	require.Error(t, err)

	var genErr *llm.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "openai", genErr.Provider)
}

func TestRewrite_EmptyResponse(t *testing.T) {
	client := &fakeClient{response: "\n  "}
	h := NewHumanizer(client)

	_, err := h.Rewrite(context.Background(), &types.LetterDraft{Text: "draft", Stage: types.StageDrafted})
	require.Error(t, err)

	var genErr *llm.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Message, "empty rewrite")
}
