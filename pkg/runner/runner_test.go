package runner

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBinary(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Skipf("%s not available: %v", path, err)
	}
}

func TestExecRunner(t *testing.T) {
	requireBinary(t, "/bin/sh")

	tests := []struct {
		name         string
		program      string
		args         []string
		wantExitCode int
		wantOutput   string
	}{
		{
			name:         "zero exit",
			program:      "/bin/sh",
			args:         []string{"-c", "exit 0"},
			wantExitCode: 0,
		},
		{
			name:         "non-zero exit is not a start error",
			program:      "/bin/sh",
			args:         []string{"-c", "exit 3"},
			wantExitCode: 3,
		},
		{
			name:         "stderr is captured",
			program:      "/bin/sh",
			args:         []string{"-c", "echo 'database \"x\" does not exist' >&2; exit 1"},
			wantExitCode: 1,
			wantOutput:   `database "x" does not exist`,
		},
		{
			name:         "stdout is captured",
			program:      "/bin/sh",
			args:         []string{"-c", "echo VACUUM"},
			wantExitCode: 0,
			wantOutput:   "VACUUM",
		},
	}

	r := NewExecRunner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Run(context.Background(), tt.program, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExitCode, res.ExitCode)
			assert.Equal(t, tt.wantExitCode == 0, res.Success())
			assert.Equal(t, tt.wantOutput, strings.TrimSpace(string(res.Output)))
		})
	}
}

func TestExecRunnerStartFailure(t *testing.T) {
	res, err := NewExecRunner().Run(context.Background(), "/nonexistent/vacuumdb-missing")
	require.Error(t, err)
	assert.False(t, res.Success())
}

func TestExecRunnerCanceledContext(t *testing.T) {
	requireBinary(t, "/bin/sh")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewExecRunner().Run(ctx, "/bin/sh", "-c", "exit 0")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, res.Success())
}

func TestMockRunner(t *testing.T) {
	t.Run("records calls and succeeds by default", func(t *testing.T) {
		mr := NewMockRunner()
		res, err := mr.Run(context.Background(), "vacuumdb", "--dbname", "a")
		require.NoError(t, err)
		assert.True(t, res.Success())
		require.Len(t, mr.Calls, 1)
		assert.Equal(t, MockRunnerCall{Name: "vacuumdb", Args: []string{"--dbname", "a"}}, mr.Calls[0])
	})

	t.Run("fails on the configured call", func(t *testing.T) {
		mr := NewMockRunnerFailOnCall(1, 2, "boom")
		first, err := mr.Run(context.Background(), "vacuumdb", "a")
		require.NoError(t, err)
		second, err := mr.Run(context.Background(), "vacuumdb", "b")
		require.NoError(t, err)

		assert.True(t, first.Success())
		assert.Equal(t, 2, second.ExitCode)
		assert.Equal(t, "boom", string(second.Output))
	})

	t.Run("start errors per program", func(t *testing.T) {
		startErr := errors.New("exec: not found")
		mr := NewMockRunner()
		mr.StartErrFor = map[string]error{"notify.sh": startErr}

		_, err := mr.Run(context.Background(), "vacuumdb")
		require.NoError(t, err)
		_, err = mr.Run(context.Background(), "notify.sh", "r", "ok")
		assert.ErrorIs(t, err, startErr)

		assert.Len(t, mr.CallsTo("notify.sh"), 1)
		assert.Len(t, mr.CallsTo("vacuumdb"), 1)
	})

	t.Run("respond hook", func(t *testing.T) {
		mr := NewMockRunner()
		mr.Respond = func(call MockRunnerCall) Result {
			if call.Args[0] == "bad" {
				return Result{ExitCode: 1}
			}
			return Result{}
		}
		good, _ := mr.Run(context.Background(), "vacuumdb", "good")
		bad, _ := mr.Run(context.Background(), "vacuumdb", "bad")
		assert.True(t, good.Success())
		assert.False(t, bad.Success())
	})
}
