// Tests for provider message conversion, the factory, and key-leak hygiene.
package llm

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestConvertToOpenAIMessagesPreservesRoles(t *testing.T) {
	messages := []ChatMessage{
		SystemMessage("be helpful"),
		UserMessage("explain this"),
		AssistantMessage("sure"),
	}

	converted := convertToOpenAIMessages(messages)
	if len(converted) != 3 {
		t.Fatalf("converted %d messages, want 3", len(converted))
	}
	if converted[0].Role != "system" || converted[0].Content != "be helpful" {
		t.Errorf("system message mangled: %+v", converted[0])
	}
	if converted[2].Role != "assistant" || converted[2].Content != "sure" {
		t.Errorf("assistant message mangled: %+v", converted[2])
	}
}

func TestConvertToAnthropicMessagesExtractsSystem(t *testing.T) {
	messages := []ChatMessage{
		SystemMessage("tutor instructions"),
		UserMessage("what is a loop?"),
		AssistantMessage("a loop repeats"),
		UserMessage("show me"),
	}

	converted, system := convertToAnthropicMessages(messages)
	if system != "tutor instructions" {
		t.Errorf("system prompt = %q, want extracted text", system)
	}
	// System must not remain in the message list
	if len(converted) != 3 {
		t.Fatalf("converted %d messages, want 3 (system lifted out)", len(converted))
	}
}

func TestConvertToOllamaMessagesKeepsSystemInline(t *testing.T) {
	messages := []ChatMessage{
		SystemMessage("tutor instructions"),
		UserMessage("what is a loop?"),
	}

	converted := convertToOllamaMessages(messages)
	if len(converted) != 2 {
		t.Fatalf("converted %d messages, want 2", len(converted))
	}
	if converted[0].Role != "system" {
		t.Errorf("first role = %q, want system kept as a message", converted[0].Role)
	}
}

func TestParseProviderType(t *testing.T) {
	cases := []struct {
		in   string
		want ProviderType
	}{
		{"openai", ProviderOpenAI},
		{"GPT", ProviderOpenAI},
		{"anthropic", ProviderAnthropic},
		{"Claude", ProviderAnthropic},
		{"ollama", ProviderOllama},
		{"llama", ProviderOllama},
	}
	for _, tc := range cases {
		got, err := ParseProviderType(tc.in)
		if err != nil {
			t.Errorf("ParseProviderType(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseProviderType(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseProviderType("grok"); err == nil {
		t.Error("ParseProviderType accepted an unknown provider")
	}
}

func TestProviderTypeDefaults(t *testing.T) {
	if ProviderOpenAI.DefaultModel() != ModelOpenAIGPT4oMini {
		t.Errorf("OpenAI default model = %q", ProviderOpenAI.DefaultModel())
	}
	if ProviderAnthropic.DefaultModel() != ModelAnthropicClaudeHaiku3 {
		t.Errorf("Anthropic default model = %q", ProviderAnthropic.DefaultModel())
	}
	if ProviderOllama.DefaultModel() != ModelOllamaLlama32 {
		t.Errorf("Ollama default model = %q", ProviderOllama.DefaultModel())
	}
	if ProviderOllama.EnvVar() != "" {
		t.Errorf("Ollama should need no API key env var, got %q", ProviderOllama.EnvVar())
	}
}

func TestOllamaFromEnvNeedsNoKey(t *testing.T) {
	savedHost := os.Getenv("OLLAMA_HOST")
	os.Unsetenv("OLLAMA_HOST")
	defer func() {
		if savedHost != "" {
			os.Setenv("OLLAMA_HOST", savedHost)
		}
	}()

	provider, err := ProviderOllama.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv for ollama failed: %v", err)
	}

	op, ok := provider.(*OllamaProvider)
	if !ok {
		t.Fatalf("FromEnv returned %T, want *OllamaProvider", provider)
	}
	if op.host != DefaultOllamaHost {
		t.Errorf("host = %q, want default %q", op.host, DefaultOllamaHost)
	}
	if op.Model() != ModelOllamaLlama32 {
		t.Errorf("model = %q, want default %q", op.Model(), ModelOllamaLlama32)
	}
}

// TestStreamErrorNoAPIKeyLeak verifies streaming errors don't leak API keys
func TestStreamErrorNoAPIKeyLeak(t *testing.T) {
	testKey := "sk-test-invalid-key-12345xyz"
	provider := NewOpenAIProvider(testKey, "gpt-4o-mini", 0.4)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	chunks := make(chan string, 10)
	_, err := provider.StreamChat(ctx, []ChatMessage{
		{Role: "user", Content: "test"},
	}, chunks)

	if err == nil {
		t.Skip("Expected error with invalid API key, but got success - skipping leak test")
	}

	errStr := err.Error()
	if strings.Contains(errStr, testKey) {
		t.Errorf("Stream error message leaked API key: %v", errStr)
	}
	if strings.Contains(errStr, "Authorization:") {
		t.Errorf("Stream error exposed Authorization header: %v", errStr)
	}
}
