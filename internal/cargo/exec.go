package cargo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Result captures one completed subprocess run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Succeeded reports whether the subprocess exited zero.
func (r Result) Succeeded() bool { return r.ExitCode == 0 }

// Run executes spec to completion, capturing stdout and stderr
// independently. A non-zero exit is a normal Result; only a subprocess that
// could not be located or started returns an error.
func Run(spec Spec) (Result, error) {
	cmd := exec.Command(spec.Program, spec.Args...)
	cmd.Dir = spec.Dir
	if env := spec.environ(os.Environ()); env != nil {
		cmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("failed to start %s: %w", spec.Program, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	return result, nil
}

// Execute runs spec and renders the report named by operation. The report
// format is wire-stable: callers parse nothing, but agents diff it.
func Execute(spec Spec, operation string) (string, error) {
	result, err := Run(spec)
	if err != nil {
		return "", err
	}
	return Report(spec, operation, result), nil
}

// Report formats one execution outcome. Captured output is always included,
// even on failure; an explicit marker replaces it when both streams are empty.
func Report(spec Spec, operation string, result Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", operation)
	fmt.Fprintf(&b, "📁 Working directory: %s\n", spec.Dir)
	fmt.Fprintf(&b, "🔧 Command: %s\n\n", spec.CommandLine())

	if result.Succeeded() {
		b.WriteString("✅ Command completed successfully\n\n")
	} else {
		fmt.Fprintf(&b, "❌ Command failed with exit code: %d\n\n", result.ExitCode)
	}

	if result.Stdout != "" {
		b.WriteString("📤 STDOUT:\n")
		b.WriteString(result.Stdout)
		if !strings.HasSuffix(result.Stdout, "\n") {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	if result.Stderr != "" {
		b.WriteString("📤 STDERR:\n")
		b.WriteString(result.Stderr)
		if !strings.HasSuffix(result.Stderr, "\n") {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	if result.Stdout == "" && result.Stderr == "" {
		b.WriteString("ℹ️  No output produced\n")
	}
	return b.String()
}
