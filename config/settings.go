// Package config provides application settings loaded from environment variables.
//
// Settings are created via New() which handles:
// - Backend registry lookup (display label, model, API key, daemon address)
// - Environment variable overrides with built-in defaults
// - System prompt resolution

package config

import (
	"fmt"
	"os"
	"strings"
)

// Display labels for the three chat backends. Backend selection matches
// these exactly; anything else is reported as an unknown model.
const (
	BackendGPT    = "GPT"
	BackendClaude = "Claude"
	BackendLlama  = "Llama"
)

// DefaultBackend is preselected in the picker.
const DefaultBackend = BackendGPT

// Sampling parameters for the hosted backends. The local daemon keeps its
// own defaults.
const (
	ChatTemperature float32 = 0.4
	ClaudeMaxTokens uint32  = 1024
)

// DefaultLanguage tags the fenced code block when no language is chosen.
const DefaultLanguage = "python"

// Settings holds application-wide configuration.
type Settings struct {
	SystemPrompt string
	OllamaHost   string
}

// backendInfo holds configuration for a single chat backend.
type backendInfo struct {
	modelEnv      string
	defaultModel  string
	apiKeyEnv     string
	vendor        string
	keyPreviewLen int
}

// Supported backends and their configuration.
var backends = map[string]backendInfo{
	BackendGPT:    {"OPENAI_MODEL", "gpt-4o-mini", "OPENAI_API_KEY", "OpenAI", 8},
	BackendClaude: {"ANTHROPIC_MODEL", "claude-3-haiku-20240307", "ANTHROPIC_API_KEY", "Anthropic", 7},
	BackendLlama:  {"OLLAMA_MODEL", "llama3.2", "", "", 0},
}

// backendOrder fixes the presentation order of pickers and listings.
var backendOrder = []string{BackendGPT, BackendClaude, BackendLlama}

// Backend aliases map flag and env spellings to display labels.
var backendAliases = map[string]string{
	"gpt":       BackendGPT,
	"openai":    BackendGPT,
	"claude":    BackendClaude,
	"anthropic": BackendClaude,
	"llama":     BackendLlama,
	"ollama":    BackendLlama,
}

// New loads settings from the environment. Missing variables fall back to
// built-in defaults; absent credentials are reported later, never here, so
// the shell can start with some backends unavailable.
func New() Settings {
	return Settings{
		SystemPrompt: getEnv("MENTOR_SYSTEM_PROMPT", DefaultSystemPrompt),
		OllamaHost:   os.Getenv("OLLAMA_HOST"),
	}
}

// Backends returns the selectable backend labels in presentation order.
func Backends() []string {
	result := make([]string, len(backendOrder))
	copy(result, backendOrder)
	return result
}

// Languages returns the code languages offered by the editor picker.
func Languages() []string {
	return []string{"python", "c", "javascript"}
}

// Normalize maps a backend name or alias to its display label.
func Normalize(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if _, ok := backends[trimmed]; ok {
		return trimmed, nil
	}
	if label, ok := backendAliases[strings.ToLower(trimmed)]; ok {
		return label, nil
	}
	return "", fmt.Errorf("unknown backend: %q", name)
}

// ModelFor returns the model for a backend, checking environment first.
func ModelFor(label string) (string, error) {
	info, err := lookup(label)
	if err != nil {
		return "", err
	}
	return getEnv(info.modelEnv, info.defaultModel), nil
}

// APIKeyFor returns the API key for a backend from environment variables.
// Backends that need no key return an empty key and no error.
func APIKeyFor(label string) (string, error) {
	info, err := lookup(label)
	if err != nil {
		return "", err
	}
	if info.apiKeyEnv == "" {
		return "", nil
	}
	key := os.Getenv(info.apiKeyEnv)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", info.apiKeyEnv)
	}
	return key, nil
}

// CredentialStatus describes one hosted backend's API key for the startup
// report. Preview holds the leading characters of the key when present.
type CredentialStatus struct {
	Vendor  string
	Preview string
	Present bool
}

// Credentials reports key status for the backends that need one, in
// presentation order. Missing keys are reported, never fatal.
func Credentials() []CredentialStatus {
	var result []CredentialStatus
	for _, label := range backendOrder {
		info := backends[label]
		if info.apiKeyEnv == "" {
			continue
		}
		key := os.Getenv(info.apiKeyEnv)
		result = append(result, CredentialStatus{
			Vendor:  info.vendor,
			Preview: preview(key, info.keyPreviewLen),
			Present: key != "",
		})
	}
	return result
}

// lookup returns configuration for a backend label.
func lookup(label string) (backendInfo, error) {
	info, ok := backends[label]
	if !ok {
		return backendInfo{}, fmt.Errorf("unknown backend: %q", label)
	}
	return info, nil
}

// preview returns at most n leading characters of a secret for log output.
func preview(secret string, n int) string {
	if len(secret) < n {
		n = len(secret)
	}
	return secret[:n]
}

// getEnv returns the environment value for key, or fallback when unset.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
