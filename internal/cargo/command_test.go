package cargo

import (
	"reflect"
	"strings"
	"testing"
)

func TestNewCommandWithoutToolchain(t *testing.T) {
	spec := NewCommand([]string{"check", "--workspace"}, "", nil, "/proj")
	if spec.Program != "cargo" {
		t.Fatalf("program = %q, want cargo", spec.Program)
	}
	want := []string{"check", "--workspace"}
	if !reflect.DeepEqual(spec.Args, want) {
		t.Fatalf("args = %v, want %v", spec.Args, want)
	}
	if spec.Dir != "/proj" {
		t.Fatalf("dir = %q, want /proj", spec.Dir)
	}
}

func TestNewCommandWithToolchain(t *testing.T) {
	spec := NewCommand([]string{"test", "--release"}, "nightly", nil, "/proj")
	if spec.Program != "rustup" {
		t.Fatalf("program = %q, want rustup", spec.Program)
	}
	want := []string{"run", "nightly", "cargo", "test", "--release"}
	if !reflect.DeepEqual(spec.Args, want) {
		t.Fatalf("args = %v, want %v", spec.Args, want)
	}
}

func TestNewCommandCopiesArgs(t *testing.T) {
	args := []string{"build"}
	spec := NewCommand(args, "", nil, "")
	args[0] = "mutated"
	if spec.Args[0] != "build" {
		t.Fatal("Spec.Args aliases the caller's slice")
	}
}

func TestResolveToolchain(t *testing.T) {
	cases := []struct {
		call, session, want string
	}{
		{"", "", ""},
		{"nightly", "", "nightly"},
		{"", "stable", "stable"},
		{"1.70.0", "stable", "1.70.0"},
	}
	for _, tc := range cases {
		if got := ResolveToolchain(tc.call, tc.session); got != tc.want {
			t.Errorf("ResolveToolchain(%q, %q) = %q, want %q", tc.call, tc.session, got, tc.want)
		}
	}
}

func TestMergeEnvCallWins(t *testing.T) {
	session := map[string]string{"RUST_LOG": "info", "CARGO_TERM_COLOR": "always"}
	call := map[string]string{"RUST_LOG": "debug"}

	merged := MergeEnv(session, call)

	if merged["RUST_LOG"] != "debug" {
		t.Errorf("RUST_LOG = %q, want debug", merged["RUST_LOG"])
	}
	if merged["CARGO_TERM_COLOR"] != "always" {
		t.Errorf("CARGO_TERM_COLOR = %q, want always", merged["CARGO_TERM_COLOR"])
	}
	if session["RUST_LOG"] != "info" {
		t.Error("MergeEnv modified the session map")
	}
}

func TestEncodeEnvValueKinds(t *testing.T) {
	got, err := EncodeEnv(map[string]any{
		"STR":   "plain",
		"FLAG":  true,
		"OFF":   false,
		"NUM":   float64(42),
		"FRAC":  float64(1.5),
		"EMPTY": nil,
	})
	if err != nil {
		t.Fatalf("EncodeEnv: %v", err)
	}
	want := map[string]string{
		"STR":   "plain",
		"FLAG":  "true",
		"OFF":   "false",
		"NUM":   "42",
		"FRAC":  "1.5",
		"EMPTY": "",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("EncodeEnv = %v, want %v", got, want)
	}
}

func TestEncodeEnvRejectsComposites(t *testing.T) {
	for _, value := range []any{[]any{"a"}, map[string]any{"k": "v"}} {
		_, err := EncodeEnv(map[string]any{"BAD": value})
		if err == nil {
			t.Errorf("EncodeEnv accepted %T", value)
			continue
		}
		if !strings.Contains(err.Error(), `"BAD"`) {
			t.Errorf("error %q does not name the offending key", err)
		}
	}
}

func TestEncodeEnvEmpty(t *testing.T) {
	got, err := EncodeEnv(nil)
	if err != nil || got != nil {
		t.Fatalf("EncodeEnv(nil) = %v, %v; want nil, nil", got, err)
	}
}

func TestCommandLineEscaping(t *testing.T) {
	spec := Spec{
		Program: "cargo",
		Args:    []string{"run", "--", "hello world", "plain", `quo"te`},
	}
	got := spec.CommandLine()
	want := `cargo run -- "hello world" plain "quo\"te"`
	if got != want {
		t.Fatalf("CommandLine = %q, want %q", got, want)
	}
}

func TestEnvironSortedOverlay(t *testing.T) {
	spec := Spec{Env: map[string]string{"Z_VAR": "z", "A_VAR": "a"}}
	env := spec.environ([]string{"PATH=/usr/bin"})
	want := []string{"PATH=/usr/bin", "A_VAR=a", "Z_VAR=z"}
	if !reflect.DeepEqual(env, want) {
		t.Fatalf("environ = %v, want %v", env, want)
	}
}

func TestEnvironNilWhenNoOverlay(t *testing.T) {
	spec := Spec{}
	if env := spec.environ([]string{"PATH=/usr/bin"}); env != nil {
		t.Fatalf("environ = %v, want nil (inherit parent)", env)
	}
}
