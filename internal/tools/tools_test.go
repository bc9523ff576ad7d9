package tools

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"cargomcp/internal/session"
)

// stubToolchain puts fake cargo and rustup binaries that echo their argument
// vector at the front of PATH, so handler tests observe the exact invocation
// without a Rust installation.
func stubToolchain(t *testing.T) {
	t.Helper()
	bin := t.TempDir()
	script := "#!/bin/sh\necho \"$0 $@\"\n"
	for _, name := range []string{"cargo", "rustup"} {
		if err := os.WriteFile(filepath.Join(bin, name), []byte(script), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// newProjectState creates a session whose working directory is a minimal
// Rust project.
func newProjectState(t *testing.T) *session.State {
	t.Helper()
	st, err := session.NewState(session.Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	project := t.TempDir()
	if err := os.WriteFile(filepath.Join(project, "Cargo.toml"), []byte("[package]\nname = \"demo\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := st.SetWorkingDirectory(project, ""); err != nil {
		t.Fatal(err)
	}
	return st
}

// invocation extracts the echoed argument vector from a report's STDOUT
// section, dropping the echoed program path.
var stdoutLine = regexp.MustCompile(`📤 STDOUT:\n(.+)\n`)

func invocation(t *testing.T, report string) string {
	t.Helper()
	m := stdoutLine.FindStringSubmatch(report)
	if m == nil {
		t.Fatalf("report has no stdout section:\n%s", report)
	}
	fields := strings.SplitN(m[1], " ", 2)
	program := filepath.Base(fields[0])
	if len(fields) == 1 {
		return program
	}
	return program + " " + fields[1]
}

func TestRegistryOrderAndSchemas(t *testing.T) {
	entries := Registry()
	wantOrder := []string{
		NameCargoCheck, NameCargoClippy, NameCargoTest, NameCargoFmtCheck,
		NameCargoBuild, NameCargoBench, NameCargoAdd, NameCargoRemove,
		NameCargoUpdate, NameCargoClean, NameSetWorkingDirectory, NameCargoRun,
	}
	if len(entries) != len(wantOrder) {
		t.Fatalf("registry has %d entries, want %d", len(entries), len(wantOrder))
	}
	for i, entry := range entries {
		if entry.Name != wantOrder[i] {
			t.Errorf("registry[%d] = %q, want %q", i, entry.Name, wantOrder[i])
		}
		if entry.Description == "" {
			t.Errorf("tool %s has no description", entry.Name)
		}
		var schema map[string]any
		if err := json.Unmarshal(entry.InputSchema, &schema); err != nil {
			t.Errorf("tool %s schema: %v", entry.Name, err)
			continue
		}
		if schema["type"] != "object" {
			t.Errorf("tool %s schema type = %v, want object", entry.Name, schema["type"])
		}
	}
}

func TestDispatchBuildsExpectedInvocations(t *testing.T) {
	stubToolchain(t)
	st := newProjectState(t)

	cases := []struct {
		tool string
		args string
		want string
	}{
		{NameCargoCheck, ``, "cargo check"},
		{NameCargoCheck, `{"package":"core"}`, "cargo check --package core"},
		{NameCargoClippy, `{}`, "cargo clippy -- -D warnings"},
		{NameCargoClippy, `{"package":"core","fix":true}`, "cargo clippy --package core --fix -- -D warnings"},
		{NameCargoTest, `{"test_name":"parses_empty"}`, "cargo test parses_empty"},
		{NameCargoTest, `{"package":"core","test_name":"io"}`, "cargo test --package core io"},
		{NameCargoFmtCheck, `{}`, "cargo fmt --check"},
		{NameCargoBuild, `{"release":true}`, "cargo build --release"},
		{NameCargoBench, `{"bench_name":"fib","baseline":"main"}`, "cargo bench fib -- --save-baseline main"},
		{NameCargoAdd, `{"dependencies":["serde@1.0","anyhow"],"dev":true,"features":["derive","rc"]}`,
			"cargo add --dev --features derive,rc serde@1.0 anyhow"},
		{NameCargoAdd, `{"dependencies":["tokio"],"package":"core","optional":true}`,
			"cargo add --package core --optional tokio"},
		{NameCargoRemove, `{"dependencies":["serde"],"dev":true}`, "cargo remove --dev serde"},
		{NameCargoUpdate, `{"dry_run":true,"dependencies":["serde","tokio"]}`,
			"cargo update --dry-run --package serde --package tokio"},
		{NameCargoClean, `{"package":"core"}`, "cargo clean --package core"},
		{NameCargoRun, `{"bin":"server","release":true,"features":"tls","args":["--port","8080"]}`,
			"cargo run --bin server --release --features tls -- --port 8080"},
	}
	for _, tc := range cases {
		report, err := Dispatch(st, tc.tool, json.RawMessage(tc.args))
		if err != nil {
			t.Errorf("%s %s: %v", tc.tool, tc.args, err)
			continue
		}
		if got := invocation(t, report); got != tc.want {
			t.Errorf("%s %s:\n  got  %q\n  want %q", tc.tool, tc.args, got, tc.want)
		}
	}
}

func TestToolchainRoutesThroughRustup(t *testing.T) {
	stubToolchain(t)
	st := newProjectState(t)

	report, err := Dispatch(st, NameCargoCheck, json.RawMessage(`{"toolchain":"nightly"}`))
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got, want := invocation(t, report), "rustup run nightly cargo check"; got != want {
		t.Fatalf("invocation = %q, want %q", got, want)
	}
}

func TestSessionToolchainAppliesWhenCallOmitsIt(t *testing.T) {
	stubToolchain(t)
	st := newProjectState(t)
	if err := st.SetDefaultToolchain("stable", ""); err != nil {
		t.Fatal(err)
	}

	report, err := Dispatch(st, NameCargoBuild, nil)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got, want := invocation(t, report), "rustup run stable cargo build"; got != want {
		t.Fatalf("invocation = %q, want %q", got, want)
	}

	// An explicit per-call toolchain wins over the session default.
	report, err = Dispatch(st, NameCargoBuild, json.RawMessage(`{"toolchain":"1.70.0"}`))
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got, want := invocation(t, report), "rustup run 1.70.0 cargo build"; got != want {
		t.Fatalf("invocation = %q, want %q", got, want)
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	st := newProjectState(t)
	_, err := Dispatch(st, "cargo_publish", nil)
	if err == nil || !strings.Contains(err.Error(), "unknown tool: cargo_publish") {
		t.Fatalf("err = %v, want unknown tool error", err)
	}
}

func TestDispatchInvalidArgumentShape(t *testing.T) {
	st := newProjectState(t)
	_, err := Dispatch(st, NameCargoCheck, json.RawMessage(`{"toolchain":5}`))
	if err == nil || !strings.Contains(err.Error(), "invalid arguments for cargo_check") {
		t.Fatalf("err = %v, want invalid-arguments error", err)
	}
}

func TestUnsupportedEnvValueFailsBeforeSpawn(t *testing.T) {
	// No stub toolchain on PATH: a spawn attempt would fail loudly.
	st := newProjectState(t)
	_, err := Dispatch(st, NameCargoCheck, json.RawMessage(`{"cargo_env":{"BAD":["x"]}}`))
	if err == nil || !strings.Contains(err.Error(), `"BAD"`) {
		t.Fatalf("err = %v, want unsupported env value error", err)
	}
}

func TestCargoEnvMergeReachesSubprocess(t *testing.T) {
	bin := t.TempDir()
	script := "#!/bin/sh\necho \"$PROBE_A $PROBE_B\"\n"
	if err := os.WriteFile(filepath.Join(bin, "cargo"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	st := newProjectState(t)
	if err := st.SetCargoEnv("PROBE_A", "session", ""); err != nil {
		t.Fatal(err)
	}
	if err := st.SetCargoEnv("PROBE_B", "session", ""); err != nil {
		t.Fatal(err)
	}

	report, err := Dispatch(st, NameCargoCheck, json.RawMessage(`{"cargo_env":{"PROBE_B":"call"}}`))
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(report, "session call") {
		t.Fatalf("report does not show call-over-session env merge:\n%s", report)
	}
}

func TestSetWorkingDirectoryTildeExpansion(t *testing.T) {
	st, err := session.NewState(session.Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.Mkdir(filepath.Join(home, "proj"), 0o755); err != nil {
		t.Fatal(err)
	}

	text, err := Dispatch(st, NameSetWorkingDirectory, json.RawMessage(`{"path":"~/proj"}`))
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(text, "Working directory set to:") {
		t.Fatalf("unexpected text: %q", text)
	}

	dir, err := st.WorkingDirectory("")
	if err != nil {
		t.Fatal(err)
	}
	want, err := filepath.EvalSymlinks(filepath.Join(home, "proj"))
	if err != nil {
		t.Fatal(err)
	}
	if dir != want {
		t.Fatalf("working directory = %q, want %q", dir, want)
	}
	if strings.Contains(dir, "~") {
		t.Fatalf("tilde not expanded: %q", dir)
	}
}

func TestSetWorkingDirectoryWarnsWithoutCargoToml(t *testing.T) {
	st, err := session.NewState(session.Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(setWorkingDirectoryArgs{Path: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	text, err := Dispatch(st, NameSetWorkingDirectory, raw)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(text, "doesn't appear to be a Rust project") {
		t.Fatalf("text = %q, want the no-Cargo.toml warning", text)
	}
}
