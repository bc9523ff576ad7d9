package session

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSessionID is used whenever a caller does not name a session.
const DefaultSessionID = "default"

// ToolchainEnvVar seeds the default toolchain at startup.
const ToolchainEnvVar = "CARGO_MCP_DEFAULT_TOOLCHAIN"

// SharedContext is the record shared across all collaborating tool-family
// servers. Only the working directory lives here.
type SharedContext struct {
	ContextPath string `json:"context_path,omitempty"`
}

// CargoSession holds the cargo-specific defaults for one session.
type CargoSession struct {
	// DefaultToolchain applies when a call names no toolchain
	// (e.g. "stable", "nightly", "1.70.0").
	DefaultToolchain string `json:"default_toolchain,omitempty"`
	// CargoEnv is merged under per-call environment overrides.
	CargoEnv map[string]string `json:"cargo_env,omitempty"`
}

// State bundles the two injected stores behind the operations the tool
// handlers need. It is constructed once and passed into the server.
type State struct {
	private          *Store[CargoSession]
	shared           *Store[SharedContext]
	defaultSessionID string
}

// Options configures NewState. Zero values select the on-disk layout shared
// with the sibling tool families (~/.ai-tools/sessions).
type Options struct {
	// Dir is the directory holding both store files.
	Dir string
	// DefaultSessionID overrides the "default" session key.
	DefaultSessionID string
	// DefaultToolchain, when non-empty, is written through the ordinary
	// update path at startup (normally sourced from CARGO_MCP_DEFAULT_TOOLCHAIN).
	DefaultToolchain string
}

// DefaultDir returns the session directory shared with sibling tool families.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ai-tools", "sessions")
}

// NewState opens the private and shared stores and applies startup seeding.
func NewState(opts Options) (*State, error) {
	dir := opts.Dir
	if dir == "" {
		dir = DefaultDir()
	}
	private, err := NewStore[CargoSession](filepath.Join(dir, "cargo-mcp.json"))
	if err != nil {
		return nil, err
	}
	shared, err := NewStore[SharedContext](filepath.Join(dir, "shared-context.json"))
	if err != nil {
		return nil, err
	}

	st := &State{
		private:          private,
		shared:           shared,
		defaultSessionID: opts.DefaultSessionID,
	}
	if st.defaultSessionID == "" {
		st.defaultSessionID = DefaultSessionID
	}

	if opts.DefaultToolchain != "" {
		if err := st.SetDefaultToolchain(opts.DefaultToolchain, ""); err != nil {
			return nil, fmt.Errorf("seed default toolchain: %w", err)
		}
	}
	return st, nil
}

// PrivateStorePath returns the cargo-specific store file path.
func (s *State) PrivateStorePath() string { return s.private.Path() }

// SharedStorePath returns the shared-context store file path.
func (s *State) SharedStorePath() string { return s.shared.Path() }

func (s *State) sessionID(id string) string {
	if id == "" {
		return s.defaultSessionID
	}
	return id
}

// WorkingDirectory returns the session's working directory, or "" when unset.
func (s *State) WorkingDirectory(sessionID string) (string, error) {
	record, err := s.shared.GetOrCreate(s.sessionID(sessionID))
	if err != nil {
		return "", err
	}
	return record.ContextPath, nil
}

// SetWorkingDirectory persists the working directory into the shared store.
func (s *State) SetWorkingDirectory(path, sessionID string) error {
	return s.shared.Update(s.sessionID(sessionID), func(record *SharedContext) {
		record.ContextPath = path
	})
}

// DefaultToolchain returns the session's default toolchain, or "" when unset.
func (s *State) DefaultToolchain(sessionID string) (string, error) {
	record, err := s.private.GetOrCreate(s.sessionID(sessionID))
	if err != nil {
		return "", err
	}
	return record.DefaultToolchain, nil
}

// SetDefaultToolchain persists the default toolchain. An empty value clears it.
func (s *State) SetDefaultToolchain(toolchain, sessionID string) error {
	return s.private.Update(s.sessionID(sessionID), func(record *CargoSession) {
		record.DefaultToolchain = toolchain
	})
}

// CargoEnv returns a copy of the session's default environment variables.
func (s *State) CargoEnv(sessionID string) (map[string]string, error) {
	record, err := s.private.GetOrCreate(s.sessionID(sessionID))
	if err != nil {
		return nil, err
	}
	env := make(map[string]string, len(record.CargoEnv))
	for k, v := range record.CargoEnv {
		env[k] = v
	}
	return env, nil
}

// SetCargoEnv sets one default environment variable for the session. An
// empty value removes the entry.
func (s *State) SetCargoEnv(key, value, sessionID string) error {
	return s.private.Update(s.sessionID(sessionID), func(record *CargoSession) {
		if value == "" {
			delete(record.CargoEnv, key)
			return
		}
		if record.CargoEnv == nil {
			record.CargoEnv = make(map[string]string)
		}
		record.CargoEnv[key] = value
	})
}

// ClearSession resets both records for the session.
func (s *State) ClearSession(sessionID string) error {
	id := s.sessionID(sessionID)
	if err := s.private.Update(id, func(record *CargoSession) {
		*record = CargoSession{}
	}); err != nil {
		return err
	}
	return s.shared.Update(id, func(record *SharedContext) {
		*record = SharedContext{}
	})
}

// Sessions lists the session ids known to either store.
func (s *State) Sessions() ([]string, error) {
	seen := make(map[string]struct{})
	privateIDs, err := s.private.Sessions()
	if err != nil {
		return nil, err
	}
	sharedIDs, err := s.shared.Sessions()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(privateIDs)+len(sharedIDs))
	for _, id := range privateIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, id := range sharedIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// EnsureRustProject resolves the session's working directory and verifies it
// contains a Cargo.toml. Every cargo tool calls this before building a command.
func (s *State) EnsureRustProject(sessionID string) (string, error) {
	dir, err := s.WorkingDirectory(sessionID)
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", fmt.Errorf("No working directory set. Use set_working_directory first.")
	}
	cargoToml := filepath.Join(dir, "Cargo.toml")
	if _, err := os.Stat(cargoToml); err != nil {
		return "", fmt.Errorf("Not a Rust project: Cargo.toml not found in %s", dir)
	}
	return dir, nil
}
