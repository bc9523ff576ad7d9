package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"cargomcp/internal/session"
)

var schemaCargoAdd = json.RawMessage(`{
	"type": "object",
	"properties": {
		"dependencies": {"type": "array", "items": {"type": "string"}, "description": "Dependencies to add, each 'name' or 'name@version'"},
		"package": {"type": "string", "description": "Optional package name to add the dependencies to (for workspaces)"},
		"dev": {"type": "boolean", "description": "Add as development dependencies"},
		"optional": {"type": "boolean", "description": "Mark the dependencies as optional"},
		"features": {"type": "array", "items": {"type": "string"}, "description": "Features to enable for the added dependencies"},
		"toolchain": {"type": "string", "description": "Optional Rust toolchain to use (e.g. 'stable', 'nightly', '1.70.0')"},
		"cargo_env": {"type": "object", "description": "Optional environment variables to set for the cargo command"}
	},
	"required": ["dependencies"]
}`)

type cargoAddArgs struct {
	Dependencies []string `json:"dependencies"`
	Package      string   `json:"package,omitempty"`
	Dev          bool     `json:"dev,omitempty"`
	Optional     bool     `json:"optional,omitempty"`
	Features     []string `json:"features,omitempty"`
	commonArgs
}

func runCargoAdd(st *session.State, raw json.RawMessage) (string, error) {
	var args cargoAddArgs
	if err := decodeArgs(NameCargoAdd, raw, &args); err != nil {
		return "", err
	}
	if len(args.Dependencies) == 0 {
		return "", fmt.Errorf("No dependencies specified")
	}

	cargoArgs := []string{"add"}
	if args.Package != "" {
		cargoArgs = append(cargoArgs, "--package", args.Package)
	}
	if args.Dev {
		cargoArgs = append(cargoArgs, "--dev")
	}
	if args.Optional {
		cargoArgs = append(cargoArgs, "--optional")
	}
	if len(args.Features) > 0 {
		cargoArgs = append(cargoArgs, "--features", strings.Join(args.Features, ","))
	}
	cargoArgs = append(cargoArgs, args.Dependencies...)
	return execCargo(st, args.commonArgs, cargoArgs, "cargo add")
}
