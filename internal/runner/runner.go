// Package runner provides command execution for the container engine and
// compose CLI.
//
// All external process invocation in the provisioner goes through the
// Runner interface so that handlers can be tested without a container
// engine on the host.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Result holds the outcome of a captured command invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes external commands.
type Runner interface {
	// Run executes a command and captures its output.
	Run(ctx context.Context, name string, args ...string) (*Result, error)

	// RunInteractive executes a command with stdout and stderr attached
	// to the terminal. Used for long-running engine operations (pull,
	// up) whose progress output belongs to the operator.
	RunInteractive(ctx context.Context, name string, args ...string) error

	// LookPath reports the filesystem path of a binary, or an error if
	// it is not present on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command and captures stdout and stderr.
//
// A non-zero exit is returned as an error wrapping the command's stderr;
// the Result is still populated so callers can inspect output and exit
// code.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	// #nosec G204 -- command names and arguments come from internal constants, not operator input
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(err),
	}

	if err != nil {
		return result, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return result, nil
}

// RunInteractive executes a command with output attached to the terminal.
func (r *ExecRunner) RunInteractive(ctx context.Context, name string, args ...string) error {
	// #nosec G204 -- command names and arguments come from internal constants, not operator input
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// LookPath resolves a binary on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// exitCode extracts the process exit code from a Run error.
// Returns 0 on success and -1 when the process never ran.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
