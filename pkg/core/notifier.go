package core

import (
	"context"
	"fmt"

	"pg-vacuum/pkg/runner"
)

// Notifier hands status messages to an external notification script.
type Notifier struct {
	runner runner.Runner
	logger *Logger
}

// NewNotifier creates a Notifier.
func NewNotifier(r runner.Runner, logger *Logger) *Notifier {
	return &Notifier{runner: r, logger: logger}
}

// Notify runs `<path> <status> <message>`. The script's exit status is not
// inspected; an error means it could not be started at all.
func (n *Notifier) Notify(ctx context.Context, path, status, message string) error {
	if _, err := n.runner.Run(ctx, path, status, message); err != nil {
		return fmt.Errorf("run notifier %q: %w", path, err)
	}
	return n.logger.Info(fmt.Sprintf("Sent Telegram notification: %s", message))
}
