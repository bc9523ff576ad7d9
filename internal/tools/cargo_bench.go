package tools

import (
	"encoding/json"

	"cargomcp/internal/session"
)

var schemaCargoBench = json.RawMessage(`{
	"type": "object",
	"properties": {
		"package": {"type": "string", "description": "Optional package name to benchmark (for workspaces)"},
		"bench_name": {"type": "string", "description": "Optional specific benchmark name to run"},
		"baseline": {"type": "string", "description": "Optional baseline name to save results under for comparison"},
		"toolchain": {"type": "string", "description": "Optional Rust toolchain to use (e.g. 'stable', 'nightly', '1.70.0')"},
		"cargo_env": {"type": "object", "description": "Optional environment variables to set for the cargo command"}
	}
}`)

type cargoBenchArgs struct {
	Package   string `json:"package,omitempty"`
	BenchName string `json:"bench_name,omitempty"`
	Baseline  string `json:"baseline,omitempty"`
	commonArgs
}

func runCargoBench(st *session.State, raw json.RawMessage) (string, error) {
	var args cargoBenchArgs
	if err := decodeArgs(NameCargoBench, raw, &args); err != nil {
		return "", err
	}

	cargoArgs := []string{"bench"}
	if args.Package != "" {
		cargoArgs = append(cargoArgs, "--package", args.Package)
	}
	if args.BenchName != "" {
		cargoArgs = append(cargoArgs, args.BenchName)
	}
	if args.Baseline != "" {
		// Harness flags go after the single separator.
		cargoArgs = append(cargoArgs, "--", "--save-baseline", args.Baseline)
	}
	return execCargo(st, args.commonArgs, cargoArgs, "cargo bench")
}
