// Package tutor routes code explanation requests to a selected backend and
// aggregates streamed fragments into conversation snapshots.
//
// The package is the UI-independent core: a Router owns the backend registry,
// composes the user turn, and drives one streaming request at a time; the
// Aggregator turns the fragment stream into full-conversation snapshots.
// Surfaces (TUI, CLI) consume the snapshot channel and redraw per emission.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/solonlabs/mentor/config"
	"github.com/solonlabs/mentor/llm"
	"github.com/solonlabs/mentor/model"
)

// unknownModelBody is shown when the selected backend matches no registry entry.
const unknownModelBody = "Unknown model selected."

// Request carries one submission from the shell: the editor inputs, the
// selected backend label, and the conversation so far. History is never
// mutated; snapshots are built from copies.
type Request struct {
	Code     string
	Question string
	Language string
	Backend  string
	History  model.Conversation
}

// Router dispatches requests to backends by display label. The registry is
// fixed at construction, so Route is safe for sequential reuse across
// requests without locking.
type Router struct {
	providers map[string]llm.Provider
	system    string
	logger    *log.Logger
}

// NewRouter builds a Router over a label to provider registry. The registry
// is copied; registration is fixed after construction. A nil logger discards
// diagnostics.
func NewRouter(providers map[string]llm.Provider, systemPrompt string, logger *log.Logger) *Router {
	registry := make(map[string]llm.Provider, len(providers))
	for label, provider := range providers {
		registry[label] = provider
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Router{
		providers: registry,
		system:    systemPrompt,
		logger:    logger,
	}
}

// Backends returns the registered display labels. Order is unspecified.
func (r *Router) Backends() []string {
	labels := make([]string, 0, len(r.providers))
	for label := range r.providers {
		labels = append(labels, label)
	}
	return labels
}

// Route sends one request to the selected backend and returns a channel of
// conversation snapshots, one per streamed fragment, closed when the stream
// ends. Backend failures surface as a final error turn in the transcript,
// never as a panic or a dropped stream. The caller must drain the channel.
//
// An unrecognized backend label yields a single snapshot appending only an
// assistant turn with a fixed notice. Empty editor inputs yield a closed
// channel with zero emissions and no backend call.
func (r *Router) Route(ctx context.Context, req Request) <-chan model.Conversation {
	provider, ok := r.providers[req.Backend]
	if !ok {
		snapshots := make(chan model.Conversation, 1)
		snapshots <- append(req.History.Clone(), model.AssistantTurn(unknownModelBody))
		close(snapshots)
		return snapshots
	}

	if req.Code == "" && req.Question == "" {
		snapshots := make(chan model.Conversation)
		close(snapshots)
		return snapshots
	}

	userContent := ComposeUserContent(req.Code, req.Question, req.Language)
	fragments := make(chan string)
	go r.drive(ctx, provider, req, userContent, fragments)
	return Aggregate(req.History, userContent, fragments)
}

// drive runs the backend stream and owns the fragments channel. On failure
// the error is delivered as one trailing fragment labeled with the backend,
// after every fragment the backend already produced. Cancellation closes the
// stream without a trailing turn.
func (r *Router) drive(ctx context.Context, provider llm.Provider, req Request, userContent string, fragments chan<- string) {
	defer close(fragments)

	messages := make([]llm.ChatMessage, 0, len(req.History)+2)
	if r.system != "" {
		messages = append(messages, llm.SystemMessage(r.system))
	}
	for _, turn := range req.History {
		messages = append(messages, llm.ChatMessage{Role: string(turn.Role), Content: turn.Body})
	}
	messages = append(messages, llm.UserMessage(userContent))

	usage, err := provider.StreamChat(ctx, messages, fragments)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		r.logger.Error("stream failed", "backend", req.Backend, "model", provider.Model(), "err", err)
		fragments <- fmt.Sprintf("%s Error: %s", req.Backend, err.Error())
		return
	}

	if usage != nil {
		r.logger.Debug("stream complete",
			"backend", req.Backend,
			"model", provider.Model(),
			"prompt_tokens", usage.PromptTokens,
			"completion_tokens", usage.CompletionTokens)
	}
}

// ComposeUserContent builds the user turn body from the editor inputs: a
// fenced code block holding the trimmed code, then the trimmed question.
// Emptiness is judged on the raw inputs; trimming happens here. The fence
// tag is the request language, python when unset.
func ComposeUserContent(code, question, language string) string {
	if language == "" {
		language = config.DefaultLanguage
	}
	var b strings.Builder
	if code != "" {
		fmt.Fprintf(&b, "Please explain this code:\n\n```%s\n%s\n```\n\n", language, strings.TrimSpace(code))
	}
	if question != "" {
		b.WriteString(strings.TrimSpace(question))
	}
	return b.String()
}
