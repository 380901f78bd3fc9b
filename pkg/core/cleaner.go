package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"pg-vacuum/pkg/constants"
	"pg-vacuum/pkg/runner"
)

// Cleaner runs the external cleanup tool against one database at a time.
type Cleaner struct {
	config  *Config
	runner  runner.Runner
	logger  *Logger
	console zerolog.Logger
	verbose bool
}

// NewCleaner creates a Cleaner for the connection described by config.
func NewCleaner(config *Config, r runner.Runner, logger *Logger, console zerolog.Logger, verbose bool) *Cleaner {
	return &Cleaner{
		config:  config,
		runner:  r,
		logger:  logger,
		console: console,
		verbose: verbose,
	}
}

// CommandArgs returns the cleanup tool arguments for target.
func (c *Cleaner) CommandArgs(target string) []string {
	return []string{
		"--host", c.config.Host,
		"--port", string(c.config.Port),
		"--username", c.config.Username,
		"--dbname", target,
		"--command", constants.MaintenanceCommand,
	}
}

// Cleanup runs one cleanup attempt against target and logs the outcome.
// A failed cleanup is reported through the result. The returned error is
// non-nil when the log sink fails, or when ctx was canceled, in which case
// nothing is logged for target.
func (c *Cleaner) Cleanup(ctx context.Context, target string) (CleanupResult, error) {
	args := c.CommandArgs(target)
	if c.verbose {
		c.console.Info().Msgf("Executing command: %s", strings.Join(append([]string{c.config.CleanupToolPath}, args...), " "))
	}

	res, err := c.runner.Run(ctx, c.config.CleanupToolPath, args...)
	if cerr := ctx.Err(); cerr != nil {
		return CleanupResult{Target: target}, fmt.Errorf("cleanup of database '%s' interrupted: %w", target, cerr)
	}
	result := CleanupResult{Target: target, Succeeded: err == nil && res.Success()}

	if result.Succeeded {
		msg := fmt.Sprintf("Cleanup for database '%s' completed successfully.", target)
		if lerr := c.logger.Info(msg); lerr != nil {
			return result, lerr
		}
		if c.verbose {
			c.console.Info().Msg(msg)
		}
		return result, nil
	}

	result.Detail = failureDetail(res, err)
	msg := fmt.Sprintf("Error cleaning up database '%s': %s", target, result.Detail)
	if lerr := c.logger.Error(msg); lerr != nil {
		return result, lerr
	}
	if c.verbose {
		c.console.Error().Msg(msg)
	}
	return result, nil
}

// failureDetail prefers what the tool printed, then the start error, then
// the bare exit status.
func failureDetail(res runner.Result, err error) string {
	if out := strings.TrimSpace(string(res.Output)); out != "" {
		return out
	}
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("exit status %d", res.ExitCode)
}
