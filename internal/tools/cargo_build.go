package tools

import (
	"encoding/json"

	"cargomcp/internal/session"
)

var schemaCargoBuild = json.RawMessage(`{
	"type": "object",
	"properties": {
		"package": {"type": "string", "description": "Optional package name to build (for workspaces)"},
		"release": {"type": "boolean", "description": "Build in release mode"},
		"toolchain": {"type": "string", "description": "Optional Rust toolchain to use (e.g. 'stable', 'nightly', '1.70.0')"},
		"cargo_env": {"type": "object", "description": "Optional environment variables to set for the cargo command"}
	}
}`)

type cargoBuildArgs struct {
	Package string `json:"package,omitempty"`
	Release bool   `json:"release,omitempty"`
	commonArgs
}

func runCargoBuild(st *session.State, raw json.RawMessage) (string, error) {
	var args cargoBuildArgs
	if err := decodeArgs(NameCargoBuild, raw, &args); err != nil {
		return "", err
	}

	cargoArgs := []string{"build"}
	if args.Package != "" {
		cargoArgs = append(cargoArgs, "--package", args.Package)
	}
	if args.Release {
		cargoArgs = append(cargoArgs, "--release")
	}
	return execCargo(st, args.commonArgs, cargoArgs, "cargo build")
}
