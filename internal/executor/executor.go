package executor

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotFound indicates the requested executable could not be located on the
// host. Callers use it to fall back to an alternate tool; every other failure
// means the tool exists and ran.
var ErrNotFound = errors.New("executable not found")

// Result captures a completed command invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// notFoundExitCode is the conventional shell exit code for a missing command.
const notFoundExitCode = 127

// Run executes name with args synchronously and returns the captured output.
//
// Three outcomes are distinguished:
//   - the executable is missing: error wrapping ErrNotFound
//   - the command ran and exited non-zero: Result with the exit code, nil error
//   - the command ran and exited zero: Result, nil error
//
// A non-zero exit is not an error here because the diagnostic tools we drive
// routinely exit non-zero for "no matching data" (lsof exits 1 when nothing
// listens). Shells that swallow a missing command into exit 127 or a
// "not found" stderr line are mapped back to ErrNotFound.
func Run(name string, args ...string) (Result, error) {
	if _, err := exec.LookPath(name); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Start failure after a successful LookPath (removed between
			// lookup and exec, permission bits, etc.) - treat as missing.
			return Result{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
	}

	res := Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if NotFoundResult(res) {
		return res, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return res, nil
}

// NotFoundResult reports whether a completed invocation actually signals a
// missing executable. Both the exit code and the stderr text are checked
// because OS/shell combinations report missing tools differently.
func NotFoundResult(res Result) bool {
	if res.ExitCode == notFoundExitCode {
		return true
	}
	stderr := strings.ToLower(res.Stderr)
	return strings.Contains(stderr, "command not found") ||
		strings.Contains(stderr, "not recognized as")
}
