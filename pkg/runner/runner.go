// Package runner executes external programs for the cleanup and notification
// steps, plus a recording MockRunner for unit tests.
package runner

import (
	"context"
	"errors"
	"os/exec"
)

// Result is what a finished child process reports back.
type Result struct {
	ExitCode int
	Output   []byte // combined stdout and stderr
}

// Success reports whether the process exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes a program and waits for it to exit.
// A non-nil error means the program could not be started at all; a program
// that ran and exited non-zero is reported through Result.ExitCode instead.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct{}

// NewExecRunner returns the default Runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return Result{Output: out}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the child was killed by a signal.
		return Result{ExitCode: exitErr.ExitCode(), Output: out}, nil
	}
	return Result{ExitCode: -1, Output: out}, err
}
