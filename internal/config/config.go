// Package config provides configuration loading and validation for the
// cover letter agent. Values come from environment variables (loaded via
// godotenv in main) with an optional JSON config file for CLI runs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Defaults and limits.
const (
	// DefaultGeminiModel is the text-generation model for drafting
	DefaultGeminiModel = "gemini-2.5-pro"
	// DefaultOpenAIModel is the rewrite model for humanizing.
	// A different provider than the drafter gives the letter a different
	// linguistic fingerprint.
	DefaultOpenAIModel = "gpt-4o"
	// MaxUploadBytes caps the size of an uploaded resume PDF
	MaxUploadBytes = 10 << 20
	// MinPromptLength is the minimum accepted editable-prompt length
	MinPromptLength = 50
	// DefaultPort is the HTTP listen port
	DefaultPort = 8080
)

// Sender holds the applicant identity rendered into the letter header
type Sender struct {
	Name     string `json:"name,omitempty"`
	Title    string `json:"title,omitempty"`
	Location string `json:"location,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Config holds the application configuration
type Config struct {
	GeminiAPIKey string `json:"-"`
	OpenAIAPIKey string `json:"-"`
	GeminiModel  string `json:"gemini_model,omitempty"`
	OpenAIModel  string `json:"openai_model,omitempty"`

	Sender Sender `json:"sender,omitempty"`

	// OutputDir is where finished PDFs are stored for download
	OutputDir string `json:"output_dir,omitempty"`
	// PromptPath persists the editable draft prompt across restarts.
	// Empty means the prompt lives only in memory.
	PromptPath string `json:"prompt_path,omitempty"`
	// FilenameSlug overrides the sender-derived slug in output filenames
	FilenameSlug string `json:"filename_slug,omitempty"`

	Port int `json:"port,omitempty"`

	// UseBrowser enables the headless-browser fallback when a job page
	// returns too little content over plain HTTP
	UseBrowser bool `json:"use_browser,omitempty"`
	// UseStrategy enables the strategy pre-pass before drafting
	UseStrategy bool `json:"use_strategy,omitempty"`
	Verbose     bool `json:"verbose,omitempty"`
}

// FromEnv builds a Config from environment variables
func FromEnv() *Config {
	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", DefaultGeminiModel),
		OpenAIModel:  envOr("OPENAI_MODEL", DefaultOpenAIModel),
		Sender: Sender{
			Name:     os.Getenv("USER_NAME"),
			Title:    os.Getenv("USER_TITLE"),
			Location: os.Getenv("USER_LOCATION"),
			Email:    os.Getenv("USER_EMAIL"),
			Phone:    os.Getenv("USER_PHONE"),
			LinkedIn: os.Getenv("USER_LINKEDIN"),
		},
		OutputDir:    envOr("OUTPUT_DIR", "output"),
		PromptPath:   os.Getenv("PROMPT_PATH"),
		FilenameSlug: os.Getenv("FILENAME_SLUG"),
		Port:         DefaultPort,
	}

	if raw := os.Getenv("PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	cfg.UseBrowser = boolEnv("USE_BROWSER")
	cfg.UseStrategy = boolEnv("USE_STRATEGY")

	return cfg
}

// LoadFile reads a JSON config file for CLI runs
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// MergeWithDefaults fills empty fields of c from defaults and returns the result.
// CLI flags should always win for booleans, so they are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}
	if result.OpenAIModel == "" {
		result.OpenAIModel = defaults.OpenAIModel
	}
	if result.Sender.Name == "" {
		result.Sender.Name = defaults.Sender.Name
	}
	if result.Sender.Title == "" {
		result.Sender.Title = defaults.Sender.Title
	}
	if result.Sender.Location == "" {
		result.Sender.Location = defaults.Sender.Location
	}
	if result.Sender.Email == "" {
		result.Sender.Email = defaults.Sender.Email
	}
	if result.Sender.Phone == "" {
		result.Sender.Phone = defaults.Sender.Phone
	}
	if result.Sender.LinkedIn == "" {
		result.Sender.LinkedIn = defaults.Sender.LinkedIn
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.PromptPath == "" {
		result.PromptPath = defaults.PromptPath
	}
	if result.FilenameSlug == "" {
		result.FilenameSlug = defaults.FilenameSlug
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.Sender.Name == "" {
		missing = append(missing, "USER_NAME")
	}
	if c.Sender.Email == "" {
		missing = append(missing, "USER_EMAIL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug returns a filename-safe identifier derived from the sender name,
// e.g. "John Doe" -> "john_doe". FilenameSlug, when configured, wins.
// Falls back to "user".
func (c *Config) Slug() string {
	if c.FilenameSlug != "" {
		return c.FilenameSlug
	}
	return Slugify(c.Sender.Name)
}

// Slugify converts an arbitrary name to safe filename format
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = slugPattern.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "user"
	}
	return name
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
