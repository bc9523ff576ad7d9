package tools

import (
	"encoding/json"

	"cargomcp/internal/session"
)

var schemaCargoCheck = json.RawMessage(`{
	"type": "object",
	"properties": {
		"package": {"type": "string", "description": "Optional package name to check (for workspaces)"},
		"toolchain": {"type": "string", "description": "Optional Rust toolchain to use (e.g. 'stable', 'nightly', '1.70.0')"},
		"cargo_env": {"type": "object", "description": "Optional environment variables to set for the cargo command"}
	}
}`)

type cargoCheckArgs struct {
	Package string `json:"package,omitempty"`
	commonArgs
}

func runCargoCheck(st *session.State, raw json.RawMessage) (string, error) {
	var args cargoCheckArgs
	if err := decodeArgs(NameCargoCheck, raw, &args); err != nil {
		return "", err
	}

	cargoArgs := []string{"check"}
	if args.Package != "" {
		cargoArgs = append(cargoArgs, "--package", args.Package)
	}
	return execCargo(st, args.commonArgs, cargoArgs, "cargo check")
}
