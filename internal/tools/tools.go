// Package tools holds the static registry of cargo operations exposed over
// tools/call. Each tool lives in its own file carrying its argument struct,
// its input schema and its handler; dispatch is a single exhaustive switch
// over the closed set of names.
package tools

import (
	"encoding/json"
	"fmt"

	"cargomcp/internal/cargo"
	"cargomcp/internal/session"
)

// Tool names, in the order tools/list reports them.
const (
	NameCargoCheck          = "cargo_check"
	NameCargoClippy         = "cargo_clippy"
	NameCargoTest           = "cargo_test"
	NameCargoFmtCheck       = "cargo_fmt_check"
	NameCargoBuild          = "cargo_build"
	NameCargoBench          = "cargo_bench"
	NameCargoAdd            = "cargo_add"
	NameCargoRemove         = "cargo_remove"
	NameCargoUpdate         = "cargo_update"
	NameCargoClean          = "cargo_clean"
	NameSetWorkingDirectory = "set_working_directory"
	NameCargoRun            = "cargo_run"
)

// Entry is one registry row surfaced by tools/list.
type Entry struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// Registry returns the static tool registry in deterministic order,
// independent of any session state.
func Registry() []Entry {
	return []Entry{
		{NameCargoCheck, "Run cargo check to verify the code compiles", schemaCargoCheck},
		{NameCargoClippy, "Run cargo clippy for linting suggestions", schemaCargoClippy},
		{NameCargoTest, "Run cargo test to execute tests", schemaCargoTest},
		{NameCargoFmtCheck, "Check code formatting with cargo fmt", schemaCargoFmtCheck},
		{NameCargoBuild, "Build the project with cargo build", schemaCargoBuild},
		{NameCargoBench, "Run cargo bench to execute benchmarks", schemaCargoBench},
		{NameCargoAdd, "Add dependencies to the project with cargo add", schemaCargoAdd},
		{NameCargoRemove, "Remove dependencies from the project with cargo remove", schemaCargoRemove},
		{NameCargoUpdate, "Update dependencies in Cargo.lock with cargo update", schemaCargoUpdate},
		{NameCargoClean, "Remove build artifacts with cargo clean", schemaCargoClean},
		{NameSetWorkingDirectory, "Set the working directory for cargo operations, shared across collaborating tool servers", schemaSetWorkingDirectory},
		{NameCargoRun, "Build and run a binary with cargo run", schemaCargoRun},
	}
}

// Dispatch routes one tools/call to its handler. An unknown name is a
// reportable execution error, never a method-routing error.
func Dispatch(st *session.State, name string, args json.RawMessage) (string, error) {
	switch name {
	case NameCargoCheck:
		return runCargoCheck(st, args)
	case NameCargoClippy:
		return runCargoClippy(st, args)
	case NameCargoTest:
		return runCargoTest(st, args)
	case NameCargoFmtCheck:
		return runCargoFmtCheck(st, args)
	case NameCargoBuild:
		return runCargoBuild(st, args)
	case NameCargoBench:
		return runCargoBench(st, args)
	case NameCargoAdd:
		return runCargoAdd(st, args)
	case NameCargoRemove:
		return runCargoRemove(st, args)
	case NameCargoUpdate:
		return runCargoUpdate(st, args)
	case NameCargoClean:
		return runCargoClean(st, args)
	case NameSetWorkingDirectory:
		return runSetWorkingDirectory(st, args)
	case NameCargoRun:
		return runCargoRun(st, args)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// decodeArgs unmarshals a tool's argument payload. A missing arguments
// member leaves the struct at its defaults.
func decodeArgs(name string, raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments for %s: %w", name, err)
	}
	return nil
}

// commonArgs are the fields every executing cargo tool accepts.
type commonArgs struct {
	// Toolchain overrides the session default for this call only.
	Toolchain string `json:"toolchain,omitempty"`
	// CargoEnv is overlaid onto the session's default environment.
	CargoEnv map[string]any `json:"cargo_env,omitempty"`
}

// execCargo is the shared tail of every executing tool: resolve the project
// directory, resolve the toolchain, merge environments, build and run.
func execCargo(st *session.State, c commonArgs, cargoArgs []string, operation string) (string, error) {
	callEnv, err := cargo.EncodeEnv(c.CargoEnv)
	if err != nil {
		return "", err
	}

	dir, err := st.EnsureRustProject("")
	if err != nil {
		return "", err
	}

	sessionDefault, err := st.DefaultToolchain("")
	if err != nil {
		return "", err
	}
	toolchain := cargo.ResolveToolchain(c.Toolchain, sessionDefault)

	sessionEnv, err := st.CargoEnv("")
	if err != nil {
		return "", err
	}
	env := cargo.MergeEnv(sessionEnv, callEnv)

	spec := cargo.NewCommand(cargoArgs, toolchain, env, dir)
	return cargo.Execute(spec, operation)
}
