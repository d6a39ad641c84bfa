package smoketest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pathomics/slidecheck/internal/logging"
)

// Result holds the captured output of a smoke test run
type Result struct {
	Stdout string
	Stderr string
}

// ExitError reports a smoke test that exited non-zero, carrying the
// captured standard error for diagnosis
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("smoke test %q exited with code %d", e.Command, e.ExitCode)
}

// Runner executes a configured smoke test command. The command is a
// capability, not an embedded path, so the harness stays independent of
// where it is invoked from
type Runner struct {
	command string
	args    []string
	log     *logging.Logger
}

// NewRunner creates a runner for the given command line
func NewRunner(command []string, log *logging.Logger) (*Runner, error) {
	if len(command) == 0 {
		return nil, errors.New("smoke test command is empty")
	}
	return &Runner{command: command[0], args: command[1:], log: log}, nil
}

// Run executes the smoke test and returns its captured output. A non-zero
// exit yields an *ExitError alongside the captured output
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cmdLine := r.String()
	r.log.Info("executing smoke test", "cmd", cmdLine)

	cmd := exec.CommandContext(ctx, r.command, r.args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		r.log.Error("smoke test failed", "cmd", cmdLine, "exit_code", exitErr.ExitCode(), "stderr", result.Stderr)
		return result, &ExitError{Command: cmdLine, ExitCode: exitErr.ExitCode(), Stderr: result.Stderr}
	}
	if err != nil {
		r.log.Error("smoke test could not be started", "cmd", cmdLine, "error", err)
		return result, fmt.Errorf("smoke test %q: %w", cmdLine, err)
	}

	r.log.Info("smoke test output", "stdout", result.Stdout)
	return result, nil
}

// String returns the full command line
func (r *Runner) String() string {
	return strings.Join(append([]string{r.command}, r.args...), " ")
}
