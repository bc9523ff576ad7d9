package tools

import (
	"encoding/json"

	"cargomcp/internal/session"
)

// The file is named cargo_test_cmd.go so the toolchain does not mistake it
// for a test file.

var schemaCargoTest = json.RawMessage(`{
	"type": "object",
	"properties": {
		"package": {"type": "string", "description": "Optional package name to test (for workspaces)"},
		"test_name": {"type": "string", "description": "Optional specific test name to run"},
		"toolchain": {"type": "string", "description": "Optional Rust toolchain to use (e.g. 'stable', 'nightly', '1.70.0')"},
		"cargo_env": {"type": "object", "description": "Optional environment variables to set for the cargo command"}
	}
}`)

type cargoTestArgs struct {
	Package  string `json:"package,omitempty"`
	TestName string `json:"test_name,omitempty"`
	commonArgs
}

func runCargoTest(st *session.State, raw json.RawMessage) (string, error) {
	var args cargoTestArgs
	if err := decodeArgs(NameCargoTest, raw, &args); err != nil {
		return "", err
	}

	cargoArgs := []string{"test"}
	if args.Package != "" {
		cargoArgs = append(cargoArgs, "--package", args.Package)
	}
	if args.TestName != "" {
		cargoArgs = append(cargoArgs, args.TestName)
	}
	return execCargo(st, args.commonArgs, cargoArgs, "cargo test")
}
