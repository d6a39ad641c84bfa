package smoketest

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/pathomics/slidecheck/internal/logging"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Shell-based subprocess tests are not portable to Windows")
	}
}

func TestNewRunner_EmptyCommand(t *testing.T) {
	_, err := NewRunner(nil, logging.Nop())
	if err == nil {
		t.Error("Expected error for empty command, got nil")
	}
}

func TestRun_Success(t *testing.T) {
	requireShell(t)

	runner, err := NewRunner([]string{"sh", "-c", "echo smoke ok"}, logging.Nop())
	if err != nil {
		t.Fatalf("Failed to create runner: %v", err)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}

	if !strings.Contains(result.Stdout, "smoke ok") {
		t.Errorf("Expected captured stdout, got: %q", result.Stdout)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	requireShell(t)

	runner, err := NewRunner([]string{"sh", "-c", "echo ray worker lost >&2; exit 3"}, logging.Nop())
	if err != nil {
		t.Fatalf("Failed to create runner: %v", err)
	}

	result, err := runner.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for non-zero exit, got nil")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected *ExitError, got: %v", err)
	}

	if exitErr.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", exitErr.ExitCode)
	}

	if !strings.Contains(exitErr.Stderr, "ray worker lost") {
		t.Errorf("Expected captured stderr in error, got: %q", exitErr.Stderr)
	}

	if !strings.Contains(result.Stderr, "ray worker lost") {
		t.Errorf("Expected captured stderr in result, got: %q", result.Stderr)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	runner, err := NewRunner([]string{"/no/such/smoke-test"}, logging.Nop())
	if err != nil {
		t.Fatalf("Failed to create runner: %v", err)
	}

	_, err = runner.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for missing binary, got nil")
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Error("Start failure should not be an *ExitError")
	}
}

func TestRunner_String(t *testing.T) {
	runner, err := NewRunner([]string{"python", "cellvit/inference/ray_test.py"}, logging.Nop())
	if err != nil {
		t.Fatalf("Failed to create runner: %v", err)
	}

	expected := "python cellvit/inference/ray_test.py"
	if runner.String() != expected {
		t.Errorf("Runner.String() = %q, expected %q", runner.String(), expected)
	}
}
