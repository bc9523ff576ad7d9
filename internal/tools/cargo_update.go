package tools

import (
	"encoding/json"

	"cargomcp/internal/session"
)

var schemaCargoUpdate = json.RawMessage(`{
	"type": "object",
	"properties": {
		"package": {"type": "string", "description": "Optional package name to update (for workspaces)"},
		"dependencies": {"type": "array", "items": {"type": "string"}, "description": "Optional specific dependencies to update; all when omitted"},
		"dry_run": {"type": "boolean", "description": "Show what would be updated without writing Cargo.lock"},
		"toolchain": {"type": "string", "description": "Optional Rust toolchain to use (e.g. 'stable', 'nightly', '1.70.0')"},
		"cargo_env": {"type": "object", "description": "Optional environment variables to set for the cargo command"}
	}
}`)

type cargoUpdateArgs struct {
	Package      string   `json:"package,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	DryRun       bool     `json:"dry_run,omitempty"`
	commonArgs
}

func runCargoUpdate(st *session.State, raw json.RawMessage) (string, error) {
	var args cargoUpdateArgs
	if err := decodeArgs(NameCargoUpdate, raw, &args); err != nil {
		return "", err
	}

	cargoArgs := []string{"update"}
	if args.Package != "" {
		cargoArgs = append(cargoArgs, "--package", args.Package)
	}
	if args.DryRun {
		cargoArgs = append(cargoArgs, "--dry-run")
	}
	for _, dep := range args.Dependencies {
		cargoArgs = append(cargoArgs, "--package", dep)
	}
	return execCargo(st, args.commonArgs, cargoArgs, "cargo update")
}
