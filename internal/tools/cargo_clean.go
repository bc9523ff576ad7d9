package tools

import (
	"encoding/json"

	"cargomcp/internal/session"
)

var schemaCargoClean = json.RawMessage(`{
	"type": "object",
	"properties": {
		"package": {"type": "string", "description": "Optional package name to clean (for workspaces)"},
		"toolchain": {"type": "string", "description": "Optional Rust toolchain to use (e.g. 'stable', 'nightly', '1.70.0')"},
		"cargo_env": {"type": "object", "description": "Optional environment variables to set for the cargo command"}
	}
}`)

type cargoCleanArgs struct {
	Package string `json:"package,omitempty"`
	commonArgs
}

func runCargoClean(st *session.State, raw json.RawMessage) (string, error) {
	var args cargoCleanArgs
	if err := decodeArgs(NameCargoClean, raw, &args); err != nil {
		return "", err
	}

	cargoArgs := []string{"clean"}
	if args.Package != "" {
		cargoArgs = append(cargoArgs, "--package", args.Package)
	}
	return execCargo(st, args.commonArgs, cargoArgs, "cargo clean")
}
