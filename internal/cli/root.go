// Package cli wires the cargomcp commands. The root command runs the MCP
// server on stdio; subcommands inspect and edit session state and config.
package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds flags shared across all commands.
type GlobalFlags struct {
	SessionDir string
	Session    string
	JSON       bool
	Verbose    bool
}

var globalFlags GlobalFlags

var rootCmd = &cobra.Command{
	Use:   "cargomcp",
	Short: "MCP server exposing cargo build tools over stdio",
	Long: "cargomcp is a Model Context Protocol server that lets MCP clients run\n" +
		"cargo commands (check, clippy, test, build, and more) against a session\n" +
		"working directory. Running it with no subcommand starts the stdio server.",
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.SessionDir, "session-dir", "", "session store directory (default: ~/.ai-tools/sessions)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Session, "session", "", "session id to operate on (default: from config)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.JSON, "json", false, "emit JSON instead of styled text")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Verbose, "verbose", false, "log request/response traffic to stderr")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and returns an error; exit code is set by main.
func Execute() error {
	return rootCmd.Execute()
}
