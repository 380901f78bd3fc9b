package runner

import (
	"context"
	"sync"
)

// MockRunnerCall records a single command invocation.
type MockRunnerCall struct {
	Name string
	Args []string
}

// MockRunner records calls and returns configurable results.
// Use NewMockRunner for a runner where every program exits 0, or
// NewMockRunnerFailOnCall to make a specific invocation exit non-zero.
type MockRunner struct {
	mu    sync.Mutex
	Calls []MockRunnerCall

	// Results maps a call index (0-based) to the Result returned for that
	// invocation. Calls without an entry return a zero Result (exit 0).
	Results map[int]Result

	// Err is returned as a start failure when FailOn matches the call index,
	// or on every call when FailOn is negative.
	Err    error
	FailOn int

	// StartErrFor makes every call to the named program fail to start.
	StartErrFor map[string]error

	// Respond, when set, decides the Result of every call that did not
	// fail to start. It takes precedence over Results.
	Respond func(call MockRunnerCall) Result
}

// NewMockRunner creates a MockRunner where every program exits 0.
func NewMockRunner() *MockRunner {
	return &MockRunner{FailOn: -1}
}

// NewMockRunnerFailOnCall creates a MockRunner whose n-th call (0-based)
// exits with the given code and output.
func NewMockRunnerFailOnCall(n, exitCode int, output string) *MockRunner {
	return &MockRunner{
		FailOn:  -1,
		Results: map[int]Result{n: {ExitCode: exitCode, Output: []byte(output)}},
	}
}

// Run implements Runner.
func (mr *MockRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	mr.Calls = append(mr.Calls, MockRunnerCall{Name: name, Args: append([]string(nil), args...)})
	idx := len(mr.Calls) - 1

	if err, ok := mr.StartErrFor[name]; ok {
		return Result{ExitCode: -1}, err
	}
	if mr.Err != nil && (mr.FailOn < 0 || mr.FailOn == idx) {
		return Result{ExitCode: -1}, mr.Err
	}
	if mr.Respond != nil {
		return mr.Respond(mr.Calls[idx]), nil
	}
	return mr.Results[idx], nil
}

// CallsTo returns the recorded calls to the named program, in order.
func (mr *MockRunner) CallsTo(name string) []MockRunnerCall {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	var calls []MockRunnerCall
	for _, c := range mr.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}
