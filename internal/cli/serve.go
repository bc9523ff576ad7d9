package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"cargomcp/internal/config"
	"cargomcp/internal/mcp"
	"cargomcp/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	Long: "serve speaks line-oriented JSON-RPC 2.0 on stdin/stdout until the\n" +
		"client closes the stream. Diagnostics go to stderr only; stdout carries\n" +
		"nothing but protocol responses.",
	RunE: runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.Verbose || globalFlags.Verbose)

	st, err := newState(cfg)
	if err != nil {
		return fmt.Errorf("opening session stores: %w", err)
	}

	logger.Printf("serving on stdio (sessions: %s)", st.PrivateStorePath())
	server := mcp.NewServer(st, os.Stdin, os.Stdout, logger)
	return server.Run()
}

// newState resolves the session directory and seeds startup defaults,
// letting flags win over config.
func newState(cfg config.Config) (*session.State, error) {
	dir := cfg.SessionDir
	if globalFlags.SessionDir != "" {
		dir = globalFlags.SessionDir
	}
	return session.NewState(session.Options{
		Dir:              dir,
		DefaultSessionID: cfg.DefaultSession,
		DefaultToolchain: cfg.DefaultToolchain,
	})
}

// newLogger returns a stderr logger; quiet unless verbose is on.
func newLogger(verbose bool) *log.Logger {
	w := io.Discard
	if verbose {
		w = os.Stderr
	}
	return log.New(w, "[cargomcp] ", log.LstdFlags)
}

// sessionID returns the session to operate on for CLI subcommands.
func sessionID(cfg config.Config) string {
	if globalFlags.Session != "" {
		return globalFlags.Session
	}
	return cfg.DefaultSession
}
