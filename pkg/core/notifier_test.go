package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pg-vacuum/pkg/runner"
)

func TestNotifierNotify(t *testing.T) {
	logger, sink := newMemoryLogger()
	mr := runner.NewMockRunner()
	n := NewNotifier(mr, logger)

	err := n.Notify(context.Background(), "/opt/notify.sh", "r", "db-host. Cleanup for 'db1' completed successfully.")
	require.NoError(t, err)

	require.Len(t, mr.Calls, 1)
	assert.Equal(t, runner.MockRunnerCall{
		Name: "/opt/notify.sh",
		Args: []string{"r", "db-host. Cleanup for 'db1' completed successfully."},
	}, mr.Calls[0])

	entries := sink.entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0], "INFO: Sent Telegram notification: db-host. Cleanup for 'db1' completed successfully.")
}

func TestNotifierIgnoresExitStatus(t *testing.T) {
	logger, sink := newMemoryLogger()
	n := NewNotifier(runner.NewMockRunnerFailOnCall(0, 1, "telegram api unreachable"), logger)

	require.NoError(t, n.Notify(context.Background(), "/opt/notify.sh", "a", "failed"))
	assert.Len(t, sink.entries(), 1)
}

func TestNotifierStartFailure(t *testing.T) {
	startErr := errors.New("executable file not found")
	logger, sink := newMemoryLogger()
	mr := runner.NewMockRunner()
	mr.StartErrFor = map[string]error{"": startErr}
	n := NewNotifier(mr, logger)

	err := n.Notify(context.Background(), "", "r", "ok")
	assert.ErrorIs(t, err, startErr)
	assert.Empty(t, sink.entries())
}
