package tools

import (
	"encoding/json"

	"cargomcp/internal/session"
)

var schemaCargoClippy = json.RawMessage(`{
	"type": "object",
	"properties": {
		"package": {"type": "string", "description": "Optional package name to lint (for workspaces)"},
		"fix": {"type": "boolean", "description": "Apply suggested fixes automatically"},
		"toolchain": {"type": "string", "description": "Optional Rust toolchain to use (e.g. 'stable', 'nightly', '1.70.0')"},
		"cargo_env": {"type": "object", "description": "Optional environment variables to set for the cargo command"}
	}
}`)

type cargoClippyArgs struct {
	Package string `json:"package,omitempty"`
	Fix     bool   `json:"fix,omitempty"`
	commonArgs
}

func runCargoClippy(st *session.State, raw json.RawMessage) (string, error) {
	var args cargoClippyArgs
	if err := decodeArgs(NameCargoClippy, raw, &args); err != nil {
		return "", err
	}

	cargoArgs := []string{"clippy"}
	if args.Package != "" {
		cargoArgs = append(cargoArgs, "--package", args.Package)
	}
	if args.Fix {
		cargoArgs = append(cargoArgs, "--fix")
	}
	// Lint-deny flags go after the single separator.
	cargoArgs = append(cargoArgs, "--", "-D", "warnings")
	return execCargo(st, args.commonArgs, cargoArgs, "cargo clippy")
}
