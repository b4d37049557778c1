// Package prompts holds the LLM prompt templates. Defaults are stored as
// JSON and embedded at compile time; the drafting prompt can additionally
// be edited at runtime through a Store.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed letter.json
var promptFiles embed.FS

// Well-known prompt keys in letter.json.
const (
	KeyDraft    = "draft"
	KeyHumanize = "humanize"
	KeyStrategy = "strategy"
)

var (
	defaults     map[string]string
	defaultsOnce sync.Once
	defaultsErr  error
)

// Get retrieves a default prompt by key.
func Get(key string) (string, error) {
	defaultsOnce.Do(loadDefaults)
	if defaultsErr != nil {
		return "", defaultsErr
	}

	prompt, exists := defaults[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return prompt, nil
}

// MustGet retrieves a default prompt by key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(key string) string {
	prompt, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces template placeholders in the form {{.Key}} with values
// from data. This is a simple substitution system for prompt customization.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

func loadDefaults() {
	data, err := promptFiles.ReadFile("letter.json")
	if err != nil {
		defaultsErr = fmt.Errorf("failed to read embedded prompts: %w", err)
		return
	}
	if err := json.Unmarshal(data, &defaults); err != nil {
		defaultsErr = fmt.Errorf("failed to parse embedded prompts: %w", err)
	}
}
