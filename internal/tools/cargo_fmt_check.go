package tools

import (
	"encoding/json"

	"cargomcp/internal/session"
)

var schemaCargoFmtCheck = json.RawMessage(`{
	"type": "object",
	"properties": {
		"toolchain": {"type": "string", "description": "Optional Rust toolchain to use (e.g. 'stable', 'nightly', '1.70.0')"},
		"cargo_env": {"type": "object", "description": "Optional environment variables to set for the cargo command"}
	}
}`)

type cargoFmtCheckArgs struct {
	commonArgs
}

func runCargoFmtCheck(st *session.State, raw json.RawMessage) (string, error) {
	var args cargoFmtCheckArgs
	if err := decodeArgs(NameCargoFmtCheck, raw, &args); err != nil {
		return "", err
	}
	return execCargo(st, args.commonArgs, []string{"fmt", "--check"}, "cargo fmt --check")
}
