// Package cargo turns a validated tool call into a subprocess specification
// and renders the execution outcome as a stable textual report.
package cargo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Spec is one fully built subprocess invocation. It is constructed once per
// call and never reused.
type Spec struct {
	Program string
	Args    []string
	// Env is an overlay applied on top of the inherited process environment.
	Env map[string]string
	Dir string
}

// NewCommand builds the invocation for cargoArgs. A non-empty toolchain
// routes through the rustup launcher with the toolchain and the real tool
// name injected ahead of the operation arguments.
func NewCommand(cargoArgs []string, toolchain string, env map[string]string, dir string) Spec {
	spec := Spec{Env: env, Dir: dir}
	if toolchain != "" {
		spec.Program = "rustup"
		spec.Args = append([]string{"run", toolchain, "cargo"}, cargoArgs...)
	} else {
		spec.Program = "cargo"
		spec.Args = append([]string(nil), cargoArgs...)
	}
	return spec
}

// ResolveToolchain applies the fixed precedence: explicit per-call toolchain,
// else the session default, else none (direct cargo invocation).
func ResolveToolchain(callToolchain, sessionDefault string) string {
	if callToolchain != "" {
		return callToolchain
	}
	return sessionDefault
}

// MergeEnv overlays call entries onto session defaults; same-named call
// entries win. Neither input map is modified.
func MergeEnv(sessionEnv, callEnv map[string]string) map[string]string {
	merged := make(map[string]string, len(sessionEnv)+len(callEnv))
	for k, v := range sessionEnv {
		merged[k] = v
	}
	for k, v := range callEnv {
		merged[k] = v
	}
	return merged
}

// EncodeEnv normalizes a JSON environment map to strings: booleans become
// "true"/"false", numbers their decimal text, strings pass through verbatim
// and null becomes the empty string. Arrays and nested objects are a
// validation error.
func EncodeEnv(env map[string]any) (map[string]string, error) {
	if len(env) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(env))
	for key, value := range env {
		switch v := value.(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = v
		case bool:
			out[key] = strconv.FormatBool(v)
		case float64:
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			out[key] = strconv.Itoa(v)
		default:
			return nil, fmt.Errorf("environment variable %q has unsupported value type %T", key, value)
		}
	}
	return out, nil
}

// CommandLine renders the invocation for the report, shell-escaping any
// token containing whitespace, quotes or backslashes.
func (s Spec) CommandLine() string {
	if len(s.Args) == 0 {
		return s.Program
	}
	escaped := make([]string, len(s.Args))
	for i, arg := range s.Args {
		escaped[i] = shellEscape(arg)
	}
	return s.Program + " " + strings.Join(escaped, " ")
}

// environ flattens the overlay in sorted key order for exec.Cmd.Env.
func (s Spec) environ(base []string) []string {
	if len(s.Env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := append([]string(nil), base...)
	for _, k := range keys {
		env = append(env, k+"="+s.Env[k])
	}
	return env
}

func shellEscape(arg string) string {
	if strings.ContainsAny(arg, " \t\"'\\") {
		return strconv.Quote(arg)
	}
	return arg
}
