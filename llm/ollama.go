// Ollama Provider implementation using the daemon's native chat API.
//
// Information Hiding:
// - Daemon address and HTTP transport
// - Request/response wire format for /api/chat
// - NDJSON streaming protocol (one JSON object per line)

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultOllamaHost is where a locally installed daemon listens.
	DefaultOllamaHost = "http://localhost:11434"

	ollamaChatPath = "/api/chat"
)

// OllamaProvider implements the Provider interface for a local Ollama daemon.
// There is no Go SDK involved; the daemon speaks plain HTTP with newline
// delimited JSON for streaming responses.
type OllamaProvider struct {
	host   string
	model  string
	client *http.Client
}

// NewOllamaProvider creates a new Ollama provider. An empty host selects
// the default local daemon address. No API key is required.
func NewOllamaProvider(host, model string) *OllamaProvider {
	if host == "" {
		host = DefaultOllamaHost
	}
	host = strings.TrimRight(host, "/")
	return &OllamaProvider{
		host:  host,
		model: model,
		// Timeout bounds the entire response read; generous because
		// local models can stream slowly on modest hardware.
		client: &http.Client{Timeout: 10 * time.Minute},
	}
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Model returns the current model.
func (p *OllamaProvider) Model() string {
	return p.model
}

// ollamaMessage mirrors the daemon's message shape.
type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaChatRequest is the /api/chat request body. Sampling options are
// deliberately absent: the daemon's model defaults apply.
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

// ollamaChatResponse is one streamed NDJSON line from /api/chat.
// The final line carries done=true plus eval counters.
type ollamaChatResponse struct {
	Model           string        `json:"model"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	DoneReason      string        `json:"done_reason,omitempty"`
	PromptEvalCount int           `json:"prompt_eval_count,omitempty"`
	EvalCount       int           `json:"eval_count,omitempty"`
	Error           string        `json:"error,omitempty"`
}

// StreamChat streams a chat completion from the local daemon. The system
// prompt travels as a system-role message at the head of the list, the same
// shape the OpenAI-style backend uses.
func (p *OllamaProvider) StreamChat(ctx context.Context, messages []ChatMessage, chunks chan<- string) (*TokenUsage, error) {
	reqBody := ollamaChatRequest{
		Model:    p.model,
		Messages: convertToOllamaMessages(messages),
		Stream:   true,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+ollamaChatPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama returned %d: %s", resp.StatusCode, decodeOllamaError(errorBody))
	}

	var usage *TokenUsage
	decoder := json.NewDecoder(resp.Body)
	for {
		var chunk ollamaChatResponse
		if err := decoder.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				return usage, nil
			}
			return usage, fmt.Errorf("stream decode failed: %w", err)
		}

		if chunk.Error != "" {
			return usage, fmt.Errorf("ollama: %s", chunk.Error)
		}

		if chunk.Message.Content != "" {
			select {
			case chunks <- chunk.Message.Content:
			case <-ctx.Done():
				return usage, ctx.Err()
			}
		}

		// Eval counters arrive on the final chunk
		if chunk.Done {
			usage = &TokenUsage{
				PromptTokens:     uint32(chunk.PromptEvalCount),
				CompletionTokens: uint32(chunk.EvalCount),
				TotalTokens:      uint32(chunk.PromptEvalCount + chunk.EvalCount),
			}
		}
	}
}

// convertToOllamaMessages converts our ChatMessage to the daemon's format.
func convertToOllamaMessages(messages []ChatMessage) []ollamaMessage {
	result := make([]ollamaMessage, len(messages))
	for i, msg := range messages {
		result[i] = ollamaMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return result
}

// decodeOllamaError pulls the error string out of a non-200 body, falling
// back to the raw body when it isn't the usual {"error": "..."} shape.
func decodeOllamaError(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return string(body)
}

// Verify OllamaProvider implements Provider
var _ Provider = (*OllamaProvider)(nil)
