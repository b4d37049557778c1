package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")
	t.Setenv("USER_NAME", "John Doe")
	t.Setenv("USER_EMAIL", "john@example.com")
	t.Setenv("PORT", "9090")
	t.Setenv("USE_BROWSER", "true")

	cfg := FromEnv()
	assert.Equal(t, "gem-key", cfg.GeminiAPIKey)
	assert.Equal(t, "oai-key", cfg.OpenAIAPIKey)
	assert.Equal(t, DefaultGeminiModel, cfg.GeminiModel)
	assert.Equal(t, "John Doe", cfg.Sender.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.UseBrowser)
	require.NoError(t, cfg.Validate())
}

func TestValidate_Missing(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	assert.Contains(t, err.Error(), "USER_NAME")
	assert.Contains(t, err.Error(), "USER_EMAIL")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"sender":{"name":"Jane Doe","email":"jane@example.com"},"output_dir":"/tmp/out","port":9999}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", cfg.Sender.Name)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 9999, cfg.Port)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Sender: Sender{Name: "Jane Doe"}}
	defaults := Config{
		GeminiAPIKey: "gem-key",
		Sender:       Sender{Name: "Ignored", Email: "jane@example.com"},
		OutputDir:    "output",
		Port:         8080,
	}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, "Jane Doe", merged.Sender.Name)
	assert.Equal(t, "jane@example.com", merged.Sender.Email)
	assert.Equal(t, "gem-key", merged.GeminiAPIKey)
	assert.Equal(t, "output", merged.OutputDir)
	assert.Equal(t, 8080, merged.Port)
}

func TestSlug_OverrideFromEnv(t *testing.T) {
	t.Setenv("USER_NAME", "John Doe")
	t.Setenv("FILENAME_SLUG", "jdoe_custom")

	cfg := FromEnv()
	assert.Equal(t, "jdoe_custom", cfg.FilenameSlug)
	assert.Equal(t, "jdoe_custom", cfg.Slug())

	// Later env changes don't affect an already-built config
	t.Setenv("FILENAME_SLUG", "something_else")
	assert.Equal(t, "jdoe_custom", cfg.Slug())
}

func TestSlug_DerivedFromSender(t *testing.T) {
	cfg := &Config{Sender: Sender{Name: "Jane Q. Doe"}}
	assert.Equal(t, "jane_q_doe", cfg.Slug())

	cfg.FilenameSlug = "custom"
	assert.Equal(t, "custom", cfg.Slug())
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"John Doe", "john_doe"},
		{"Acme, Inc.", "acme_inc"},
		{"  Weird---Name!!  ", "weird_name"},
		{"", "user"},
		{"___", "user"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}
