package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cargomcp/internal/config"
	"cargomcp/internal/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Edit session defaults stored on disk",
}

var sessionSetToolchainCmd = &cobra.Command{
	Use:   "set-toolchain <toolchain>",
	Short: "Set the session default toolchain (empty string clears it)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionSetToolchain,
}

var sessionSetEnvCmd = &cobra.Command{
	Use:   "set-env <KEY> <value>",
	Short: "Set a default cargo environment variable (empty value removes it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionSetEnv,
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the session's working directory, toolchain, and env",
	Args:  cobra.NoArgs,
	RunE:  runSessionClear,
}

func init() {
	sessionCmd.AddCommand(sessionSetToolchainCmd)
	sessionCmd.AddCommand(sessionSetEnvCmd)
	sessionCmd.AddCommand(sessionClearCmd)
}

func openSessionState() (*session.State, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	st, err := newState(cfg)
	if err != nil {
		return nil, "", err
	}
	return st, sessionID(cfg), nil
}

func runSessionSetToolchain(_ *cobra.Command, args []string) error {
	st, id, err := openSessionState()
	if err != nil {
		return err
	}
	if err := st.SetDefaultToolchain(args[0], id); err != nil {
		return err
	}
	if args[0] == "" {
		fmt.Printf("cleared default toolchain for session %q\n", id)
		return nil
	}
	fmt.Printf("session %q default toolchain set to %s\n", id, args[0])
	return nil
}

func runSessionSetEnv(_ *cobra.Command, args []string) error {
	st, id, err := openSessionState()
	if err != nil {
		return err
	}
	key, value := args[0], args[1]
	if err := st.SetCargoEnv(key, value, id); err != nil {
		return err
	}
	if value == "" {
		fmt.Printf("removed %s from session %q cargo env\n", key, id)
		return nil
	}
	fmt.Printf("session %q cargo env: %s=%s\n", id, key, value)
	return nil
}

func runSessionClear(_ *cobra.Command, _ []string) error {
	st, id, err := openSessionState()
	if err != nil {
		return err
	}
	if err := st.ClearSession(id); err != nil {
		return err
	}
	fmt.Printf("session %q cleared\n", id)
	return nil
}
