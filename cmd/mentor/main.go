// Package main provides the mentor CLI entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/solonlabs/mentor/cli"
	"github.com/solonlabs/mentor/config"
	"github.com/solonlabs/mentor/internal/logging"
	"github.com/solonlabs/mentor/storage"
	"github.com/solonlabs/mentor/tui"
)

var (
	// Global flags
	backend   string
	language  string
	storePath string
	debug     bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "mentor",
		Short: "AI Code Tutor - multi-model code explanation",
		Long: `An AI programming tutor that explains code with real-time streaming.

Three chat backends are available:
- GPT: OpenAI hosted models (needs OPENAI_API_KEY)
- Claude: Anthropic hosted models (needs ANTHROPIC_API_KEY)
- Llama: local Ollama daemon (no key needed)

Running without a subcommand opens the interactive shell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&backend, "backend", "b", config.DefaultBackend, "Chat backend (GPT, Claude, Llama)")
	rootCmd.PersistentFlags().StringVarP(&language, "lang", "l", config.DefaultLanguage, "Language tag for the code block (python, c, javascript)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Transcript database file (default: in-memory, gone on exit)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Show debug output")

	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(backendsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runShell starts the interactive tutor. Credential problems are reported
// up front and never fatal; a backend without its key fails with an error
// turn when asked.
func runShell() error {
	initialBackend, err := config.Normalize(backend)
	if err != nil {
		return err
	}

	cli.CredentialReport(os.Stdout)

	// Transcripts live in an in-memory database unless --store opts into a
	// file, so nothing survives the process by default.
	var store storage.TranscriptStore
	s, err := storage.OpenTranscripts(storePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: transcript store disabled: %v\n", err)
	} else {
		defer s.Close()
		store = s
	}

	// Log lines would tear the alt screen, so debug output goes to a file.
	logWriter := io.Discard
	if debug {
		logDir := "."
		if storePath != "" {
			logDir = filepath.Dir(storePath)
		}
		f, err := os.OpenFile(filepath.Join(logDir, "mentor.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			defer f.Close()
			logWriter = f
		}
	}

	router := cli.BuildRouter(config.New(), logging.New(debug, logWriter))
	shell := tui.New(router, store).WithBackend(initialBackend).WithLanguage(language)

	p := tea.NewProgram(shell, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run shell: %w", err)
	}
	return nil
}

func askCmd() *cobra.Command {
	var codePath string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Stream one explanation to stdout",
		Long: `Ask for a single streamed explanation without the interactive shell.

Code is read from --code ("-" reads stdin); the question is the argument.
Either may be omitted, but not both.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := ""
			if len(args) > 0 {
				question = args[0]
			}
			opts := cli.Options{
				Backend:  backend,
				Language: language,
				Debug:    debug,
			}
			return cli.Ask(context.Background(), os.Stdout, codePath, question, opts)
		},
	}

	cmd.Flags().StringVarP(&codePath, "code", "c", "", `Code file to explain ("-" reads stdin)`)

	return cmd
}

func backendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List chat backends and credential status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.ListBackends(os.Stdout)
			return nil
		},
	}
}
