package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"cargomcp/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session state from disk",
	RunE:  runStatus,
}

type sessionStatus struct {
	ID               string            `json:"id"`
	WorkingDirectory string            `json:"working_directory,omitempty"`
	DefaultToolchain string            `json:"default_toolchain,omitempty"`
	CargoEnv         map[string]string `json:"cargo_env,omitempty"`
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := newState(cfg)
	if err != nil {
		return err
	}

	ids, err := st.Sessions()
	if err != nil {
		return err
	}

	statuses := make([]sessionStatus, 0, len(ids))
	for _, id := range ids {
		dir, err := st.WorkingDirectory(id)
		if err != nil {
			return err
		}
		toolchain, err := st.DefaultToolchain(id)
		if err != nil {
			return err
		}
		env, err := st.CargoEnv(id)
		if err != nil {
			return err
		}
		statuses = append(statuses, sessionStatus{
			ID:               id,
			WorkingDirectory: dir,
			DefaultToolchain: toolchain,
			CargoEnv:         env,
		})
	}

	if globalFlags.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	s := newStyles(os.Stdout, false)
	fmt.Println(s.banner())
	fmt.Println(s.kv("Session store", st.PrivateStorePath()))
	fmt.Println(s.kv("Shared store", st.SharedStorePath()))
	if len(statuses) == 0 {
		fmt.Println(s.dim("No sessions yet."))
		return nil
	}
	for _, status := range statuses {
		fmt.Println()
		fmt.Println(s.sectionHeader("Session " + status.ID))
		fmt.Println(s.kv("Working dir", orUnset(status.WorkingDirectory)))
		fmt.Println(s.kv("Toolchain", orUnset(status.DefaultToolchain)))
		if len(status.CargoEnv) == 0 {
			fmt.Println(s.kv("Cargo env", "(none)"))
			continue
		}
		fmt.Println(s.kv("Cargo env", ""))
		for _, k := range sortedKeys(status.CargoEnv) {
			fmt.Printf("    %s\n", s.stat(k, status.CargoEnv[k]))
		}
	}
	return nil
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
