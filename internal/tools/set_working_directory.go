package tools

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cargomcp/internal/session"
)

var schemaSetWorkingDirectory = json.RawMessage(`{
	"type": "object",
	"properties": {
		"path": {"type": "string", "description": "Directory to run cargo commands in; ~ expands to the home directory"}
	},
	"required": ["path"]
}`)

type setWorkingDirectoryArgs struct {
	Path string `json:"path"`
}

func runSetWorkingDirectory(st *session.State, raw json.RawMessage) (string, error) {
	var args setWorkingDirectoryArgs
	if err := decodeArgs(NameSetWorkingDirectory, raw, &args); err != nil {
		return "", err
	}
	if args.Path == "" {
		return "", fmt.Errorf("path is required")
	}

	canonical, err := canonicalize(args.Path)
	if err != nil {
		return "", fmt.Errorf("Could not resolve path '%s': %v", args.Path, err)
	}

	if err := st.SetWorkingDirectory(canonical, ""); err != nil {
		return "", err
	}

	if _, err := os.Stat(filepath.Join(canonical, "Cargo.toml")); err == nil {
		return fmt.Sprintf("✅ Working directory set to: %s\n🦀 Rust project detected (Cargo.toml found)", canonical), nil
	}
	return fmt.Sprintf("✅ Working directory set to: %s\n⚠️  No Cargo.toml found - this doesn't appear to be a Rust project", canonical), nil
}

// canonicalize expands a leading tilde, makes the path absolute and resolves
// symlinks. The path must exist.
func canonicalize(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
