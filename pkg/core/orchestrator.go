package core

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pg-vacuum/pkg/constants"
	"pg-vacuum/pkg/runner"
)

// Options configures an Orchestrator.
type Options struct {
	SettingsPath  string
	DatabasesPath string
	Verbose       bool

	Logger  *Logger
	Console zerolog.Logger
	Runner  runner.Runner

	// Hostname labels notification messages. Defaults to os.Hostname.
	Hostname func() (string, error)
}

// Orchestrator runs the cleanup over every target in the list, one after
// another.
type Orchestrator struct {
	opts Options
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(opts Options) *Orchestrator {
	if opts.Runner == nil {
		opts.Runner = runner.NewExecRunner()
	}
	if opts.Hostname == nil {
		opts.Hostname = os.Hostname
	}
	return &Orchestrator{opts: opts}
}

// Run performs one pass over the target list.
//
// Settings that cannot be loaded end the run early with summary.Aborted set
// and no error. A target list that cannot be read, a notifier that cannot be
// started, a log file that cannot be written and a canceled ctx are returned
// as errors and stop the run. A failed cleanup never stops it; an
// interrupted one is neither logged nor notified.
func (o *Orchestrator) Run(ctx context.Context) (*RunSummary, error) {
	host, err := o.opts.Hostname()
	if err != nil {
		// label only, keep going
		host = "unknown"
	}
	summary := &RunSummary{RunID: uuid.NewString(), Host: host}

	cfg, err := LoadConfiguration(o.opts.SettingsPath, o.opts.Logger, o.opts.Console)
	if err != nil {
		return summary, err
	}
	if cfg == nil {
		summary.Aborted = true
		return summary, nil
	}

	targets, err := LoadTargetList(o.opts.DatabasesPath, cfg.ExcludePatterns)
	if err != nil {
		return summary, fmt.Errorf("load databases: %w", err)
	}

	cleaner := NewCleaner(cfg, o.opts.Runner, o.opts.Logger, o.opts.Console, o.opts.Verbose)
	notifier := NewNotifier(o.opts.Runner, o.opts.Logger)

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("run interrupted before %q: %w", target, err)
		}

		result, err := cleaner.Cleanup(ctx, target)
		if err != nil {
			return summary, err
		}
		summary.Results = append(summary.Results, result)

		if !cfg.NotificationsEnabled {
			continue
		}
		status, message := notification(cfg.MessagePrefix, host, result)
		if err := notifier.Notify(ctx, cfg.NotifierPath, status, message); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// notification builds the status token and text sent for result.
func notification(prefix, host string, result CleanupResult) (string, string) {
	label := host
	if prefix != "" {
		label = prefix + " " + host
	}
	if result.Succeeded {
		return constants.StatusSuccess, fmt.Sprintf("%s. Cleanup for '%s' completed successfully.", label, result.Target)
	}
	return constants.StatusFailure, fmt.Sprintf("%s. Cleanup for '%s' failed.", label, result.Target)
}
