// Command execution for CLI commands.
//
// Information Hiding:
// - Provider and router assembly hidden
// - Snapshot-to-delta printing hidden
// - Credential report formatting hidden

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/solonlabs/mentor/config"
	"github.com/solonlabs/mentor/internal/logging"
	"github.com/solonlabs/mentor/llm"
	"github.com/solonlabs/mentor/model"
	"github.com/solonlabs/mentor/tutor"
)

// Options holds CLI execution options.
type Options struct {
	Backend  string
	Language string
	Debug    bool
}

// DefaultOptions returns default CLI options.
func DefaultOptions() Options {
	return Options{
		Backend:  config.DefaultBackend,
		Language: config.DefaultLanguage,
	}
}

// BuildRouter assembles the three chat backends behind a router. Providers
// are always constructed, even without credentials; a missing API key
// surfaces as an error turn when that backend is actually asked.
func BuildRouter(settings config.Settings, logger *log.Logger) *tutor.Router {
	providers := make(map[string]llm.Provider)
	for _, label := range config.Backends() {
		providers[label] = buildProvider(label, settings)
	}
	return tutor.NewRouter(providers, settings.SystemPrompt, logger)
}

// buildProvider assembles one backend through the provider factory. Labels
// come from the fixed registry, so parse and build cannot fail here. The key
// may be empty; the backend then fails with an error turn when asked.
func buildProvider(label string, settings config.Settings) llm.Provider {
	modelName, _ := config.ModelFor(label)
	key, _ := config.APIKeyFor(label)
	providerType, _ := llm.ParseProviderType(label)

	provider, _ := llm.NewProviderBuilder(providerType).
		Model(modelName).
		Host(settings.OllamaHost).
		MaxTokens(config.ClaudeMaxTokens).
		Temperature(config.ChatTemperature).
		APIKey(key)
	return provider
}

// Ask streams one explanation to w and returns when the stream ends. Code
// comes from codePath ("-" reads stdin, "" skips code); question is free
// text. At least one of the two must be non-empty.
func Ask(ctx context.Context, w io.Writer, codePath, question string, opts Options) error {
	backend, err := config.Normalize(opts.Backend)
	if err != nil {
		return err
	}

	code, err := readCode(codePath)
	if err != nil {
		return err
	}
	if code == "" && question == "" {
		return fmt.Errorf("nothing to explain: provide a code file or a question")
	}

	logWriter := io.Discard
	if opts.Debug {
		logWriter = os.Stderr
	}
	router := BuildRouter(config.New(), logging.New(opts.Debug, logWriter))

	req := tutor.Request{
		Code:     code,
		Question: question,
		Language: opts.Language,
		Backend:  backend,
	}

	if opts.Debug {
		fmt.Fprintf(os.Stderr, "Asking %s...\n\n", backend)
	}

	streamTo(w, router.Route(ctx, req))
	fmt.Fprintln(w)
	return nil
}

// streamTo prints the growing assistant reply as deltas, one write per
// snapshot. Snapshots carry the whole reply so far; only the unseen suffix
// goes to the writer.
func streamTo(w io.Writer, snapshots <-chan model.Conversation) string {
	var last string
	printed := 0
	for snapshot := range snapshots {
		if len(snapshot) == 0 {
			continue
		}
		body := snapshot[len(snapshot)-1].Body
		if len(body) > printed {
			fmt.Fprint(w, body[printed:])
			printed = len(body)
		}
		last = body
	}
	return last
}

// ListBackends prints the selectable backends with their models, then the
// credential report.
func ListBackends(w io.Writer) {
	fmt.Fprintln(w, "Available backends:")
	fmt.Fprintln(w)
	for _, label := range config.Backends() {
		modelName, _ := config.ModelFor(label)
		fmt.Fprintf(w, "  %-8s %s\n", label, modelName)
	}
	fmt.Fprintln(w)
	CredentialReport(w)
}

// CredentialReport writes one line per hosted backend describing its API
// key. Missing keys are reported, never fatal; the backend stays selectable
// and fails with an error turn when asked.
func CredentialReport(w io.Writer) {
	for _, cred := range config.Credentials() {
		if cred.Present {
			fmt.Fprintf(w, "%s API Key loaded (begins with: %s)\n", cred.Vendor, cred.Preview)
		} else {
			fmt.Fprintf(w, "WARNING: %s API Key not set\n", cred.Vendor)
		}
	}
}

func readCode(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read code file: %w", err)
	}
	return string(data), nil
}
