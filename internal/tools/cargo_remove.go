package tools

import (
	"encoding/json"
	"fmt"

	"cargomcp/internal/session"
)

var schemaCargoRemove = json.RawMessage(`{
	"type": "object",
	"properties": {
		"dependencies": {"type": "array", "items": {"type": "string"}, "description": "Dependency names to remove"},
		"package": {"type": "string", "description": "Optional package name to remove the dependencies from (for workspaces)"},
		"dev": {"type": "boolean", "description": "Remove from development dependencies"},
		"toolchain": {"type": "string", "description": "Optional Rust toolchain to use (e.g. 'stable', 'nightly', '1.70.0')"},
		"cargo_env": {"type": "object", "description": "Optional environment variables to set for the cargo command"}
	},
	"required": ["dependencies"]
}`)

type cargoRemoveArgs struct {
	Dependencies []string `json:"dependencies"`
	Package      string   `json:"package,omitempty"`
	Dev          bool     `json:"dev,omitempty"`
	commonArgs
}

func runCargoRemove(st *session.State, raw json.RawMessage) (string, error) {
	var args cargoRemoveArgs
	if err := decodeArgs(NameCargoRemove, raw, &args); err != nil {
		return "", err
	}
	if len(args.Dependencies) == 0 {
		return "", fmt.Errorf("No dependencies specified")
	}

	cargoArgs := []string{"remove"}
	if args.Package != "" {
		cargoArgs = append(cargoArgs, "--package", args.Package)
	}
	if args.Dev {
		cargoArgs = append(cargoArgs, "--dev")
	}
	cargoArgs = append(cargoArgs, args.Dependencies...)
	return execCargo(st, args.commonArgs, cargoArgs, "cargo remove")
}
