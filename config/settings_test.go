package config

import (
	"os"
	"strings"
	"testing"
)

func TestNormalizeLabel(t *testing.T) {
	label, err := Normalize("GPT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != BackendGPT {
		t.Errorf("expected %q, got %q", BackendGPT, label)
	}
}

func TestNormalizeAlias(t *testing.T) {
	cases := map[string]string{
		"gpt":       BackendGPT,
		"openai":    BackendGPT,
		"claude":    BackendClaude,
		"anthropic": BackendClaude,
		"llama":     BackendLlama,
		"ollama":    BackendLlama,
		" Claude ":  BackendClaude,
	}
	for in, want := range cases {
		got, err := Normalize(in)
		if err != nil {
			t.Errorf("Normalize(%q) returned error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeUnknown(t *testing.T) {
	if _, err := Normalize("gemini"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestModelForDefault(t *testing.T) {
	original := os.Getenv("OPENAI_MODEL")
	os.Unsetenv("OPENAI_MODEL")
	defer os.Setenv("OPENAI_MODEL", original)

	model, err := ModelFor(BackendGPT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model != "gpt-4o-mini" {
		t.Errorf("expected default model 'gpt-4o-mini', got %q", model)
	}
}

func TestModelForEnvOverride(t *testing.T) {
	original := os.Getenv("OLLAMA_MODEL")
	os.Setenv("OLLAMA_MODEL", "llama3.1")
	defer os.Setenv("OLLAMA_MODEL", original)

	model, err := ModelFor(BackendLlama)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model != "llama3.1" {
		t.Errorf("expected env override 'llama3.1', got %q", model)
	}
}

func TestModelForUnknownBackend(t *testing.T) {
	if _, err := ModelFor("gemini"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestAPIKeyForPresent(t *testing.T) {
	original := os.Getenv("OPENAI_API_KEY")
	os.Setenv("OPENAI_API_KEY", "test-key")
	defer os.Setenv("OPENAI_API_KEY", original)

	key, err := APIKeyFor(BackendGPT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "test-key" {
		t.Errorf("expected 'test-key', got %q", key)
	}
}

func TestAPIKeyForMissing(t *testing.T) {
	original := os.Getenv("OPENAI_API_KEY")
	os.Unsetenv("OPENAI_API_KEY")
	defer os.Setenv("OPENAI_API_KEY", original)

	if _, err := APIKeyFor(BackendGPT); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestAPIKeyForKeylessBackend(t *testing.T) {
	key, err := APIKeyFor(BackendLlama)
	if err != nil {
		t.Fatalf("local backend should need no key, got error: %v", err)
	}
	if key != "" {
		t.Errorf("expected empty key for local backend, got %q", key)
	}
}

func TestBackendsOrder(t *testing.T) {
	got := Backends()
	want := []string{BackendGPT, BackendClaude, BackendLlama}
	if len(got) != len(want) {
		t.Fatalf("Backends() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Backends()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLanguagesDefaultFirst(t *testing.T) {
	langs := Languages()
	if len(langs) == 0 || langs[0] != DefaultLanguage {
		t.Errorf("expected %q first, got %v", DefaultLanguage, langs)
	}
}

func TestCredentials(t *testing.T) {
	originalOpenAI := os.Getenv("OPENAI_API_KEY")
	originalAnthropic := os.Getenv("ANTHROPIC_API_KEY")
	os.Setenv("OPENAI_API_KEY", "sk-proj-abcdef0123")
	os.Unsetenv("ANTHROPIC_API_KEY")
	defer func() {
		os.Setenv("OPENAI_API_KEY", originalOpenAI)
		os.Setenv("ANTHROPIC_API_KEY", originalAnthropic)
	}()

	report := Credentials()
	if len(report) != 2 {
		t.Fatalf("expected 2 hosted backends in the report, got %d", len(report))
	}

	openai := report[0]
	if openai.Vendor != "OpenAI" || !openai.Present {
		t.Errorf("OpenAI status = %+v", openai)
	}
	if openai.Preview != "sk-proj-" {
		t.Errorf("expected 8-char preview 'sk-proj-', got %q", openai.Preview)
	}

	anthropic := report[1]
	if anthropic.Vendor != "Anthropic" || anthropic.Present {
		t.Errorf("Anthropic status = %+v", anthropic)
	}
	if anthropic.Preview != "" {
		t.Errorf("expected empty preview for missing key, got %q", anthropic.Preview)
	}
}

func TestCredentialsShortKey(t *testing.T) {
	original := os.Getenv("ANTHROPIC_API_KEY")
	os.Setenv("ANTHROPIC_API_KEY", "sk-a")
	defer os.Setenv("ANTHROPIC_API_KEY", original)

	for _, status := range Credentials() {
		if status.Vendor == "Anthropic" && status.Preview != "sk-a" {
			t.Errorf("short key should preview whole key, got %q", status.Preview)
		}
	}
}

func TestNewSystemPrompt(t *testing.T) {
	original := os.Getenv("MENTOR_SYSTEM_PROMPT")
	os.Unsetenv("MENTOR_SYSTEM_PROMPT")
	defer os.Setenv("MENTOR_SYSTEM_PROMPT", original)

	settings := New()
	if !strings.Contains(settings.SystemPrompt, "programming tutor") {
		t.Error("default system prompt missing tutor instructions")
	}

	os.Setenv("MENTOR_SYSTEM_PROMPT", "terse answers only")
	settings = New()
	if settings.SystemPrompt != "terse answers only" {
		t.Errorf("env override ignored, got %q", settings.SystemPrompt)
	}
}
