package tools

import (
	"encoding/json"

	"cargomcp/internal/session"
)

var schemaCargoRun = json.RawMessage(`{
	"type": "object",
	"properties": {
		"package": {"type": "string", "description": "Optional package name to run (for workspaces)"},
		"bin": {"type": "string", "description": "Optional binary target name"},
		"example": {"type": "string", "description": "Optional example target name"},
		"release": {"type": "boolean", "description": "Run in release mode"},
		"features": {"type": "string", "description": "Comma-separated feature list to enable"},
		"all_features": {"type": "boolean", "description": "Enable all features"},
		"no_default_features": {"type": "boolean", "description": "Disable default features"},
		"args": {"type": "array", "items": {"type": "string"}, "description": "Arguments passed through to the binary after --"},
		"toolchain": {"type": "string", "description": "Optional Rust toolchain to use (e.g. 'stable', 'nightly', '1.70.0')"},
		"cargo_env": {"type": "object", "description": "Optional environment variables to set for the cargo command"}
	}
}`)

type cargoRunArgs struct {
	Package           string   `json:"package,omitempty"`
	Bin               string   `json:"bin,omitempty"`
	Example           string   `json:"example,omitempty"`
	Release           bool     `json:"release,omitempty"`
	Features          string   `json:"features,omitempty"`
	AllFeatures       bool     `json:"all_features,omitempty"`
	NoDefaultFeatures bool     `json:"no_default_features,omitempty"`
	Args              []string `json:"args,omitempty"`
	commonArgs
}

func runCargoRun(st *session.State, raw json.RawMessage) (string, error) {
	var args cargoRunArgs
	if err := decodeArgs(NameCargoRun, raw, &args); err != nil {
		return "", err
	}

	cargoArgs := []string{"run"}
	if args.Package != "" {
		cargoArgs = append(cargoArgs, "--package", args.Package)
	}
	if args.Bin != "" {
		cargoArgs = append(cargoArgs, "--bin", args.Bin)
	}
	if args.Example != "" {
		cargoArgs = append(cargoArgs, "--example", args.Example)
	}
	if args.Release {
		cargoArgs = append(cargoArgs, "--release")
	}
	if args.Features != "" {
		cargoArgs = append(cargoArgs, "--features", args.Features)
	}
	if args.AllFeatures {
		cargoArgs = append(cargoArgs, "--all-features")
	}
	if args.NoDefaultFeatures {
		cargoArgs = append(cargoArgs, "--no-default-features")
	}
	// All flags precede the single separator; passthrough tokens follow it.
	if len(args.Args) > 0 {
		cargoArgs = append(cargoArgs, "--")
		cargoArgs = append(cargoArgs, args.Args...)
	}
	return execCargo(st, args.commonArgs, cargoArgs, "cargo run")
}
