package pandoc

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/carlmjohnson/exitcode"
)

// ErrPandocFailed marks a pandoc run that exited non-zero. The child's
// exit status rides on the error chain via exitcode.Set so the CLI can
// propagate it as its own.
var ErrPandocFailed = errors.New("pandoc error")

// Runner abstracts command execution to enable testing without real
// subprocesses.
type Runner interface {
	Run(name string, args ...string) error
}

// ExecRunner runs the command synchronously with the given standard
// streams. No timeout and no retry: the invocation either completes or
// the parent itself is killed.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...) // #nosec G204 -- argument list assembled by Build from validated options
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		return exitcode.Set(fmt.Errorf("%w: %d", ErrPandocFailed, code), code)
	}
	return fmt.Errorf("running %s: %w", name, err)
}

// LookPath reports where the pandoc binary resolves, for diagnostics.
func LookPath() (string, error) {
	return exec.LookPath(Binary)
}

// Version probes `pandoc --version` at the given path and returns the
// version token from the first output line.
func Version(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path comes from LookPath
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", path, err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", fmt.Errorf("unrecognized pandoc version output: %q", line)
	}
	return strings.TrimPrefix(fields[1], "v"), nil
}
