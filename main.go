package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pg-vacuum/pkg/constants"
	"pg-vacuum/pkg/core"
	"pg-vacuum/pkg/runner"
)

type options struct {
	settingsPath  string
	databasesPath string
	logPath       string
	verbose       bool
	rotation      core.Rotation
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "pg-vacuum",
		Short:         "Run VACUUM FULL ANALYZE over a list of PostgreSQL databases",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			console := newConsole(out)
			if err := run(cmd.Context(), opts, console); err != nil {
				console.Error().Err(err).Msg("pg-vacuum aborted")
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.settingsPath, "settings", envOr(constants.EnvSettingsFile, constants.SettingsFile), "Path to the JSON settings file")
	flags.StringVar(&opts.databasesPath, "databases", envOr(constants.EnvDatabasesFile, constants.DatabasesFile), "Path to the database list, one name per line")
	flags.StringVar(&opts.logPath, "log-file", envOr(constants.EnvLogFile, constants.LogFile), "Path to the append-only log file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", true, "Echo commands and outcomes to the console")
	flags.IntVar(&opts.rotation.MaxSize, "log-max-size", 0, "Rotate the log file after this many megabytes (0 disables rotation)")
	flags.IntVar(&opts.rotation.MaxBackups, "log-max-backups", 3, "Rotated log files to keep")
	flags.IntVar(&opts.rotation.MaxAge, "log-max-age", 0, "Days to keep rotated log files (0 keeps them forever)")
	flags.BoolVar(&opts.rotation.Compress, "log-compress", false, "Gzip rotated log files")

	return cmd
}

func run(ctx context.Context, opts *options, console zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := core.NewFileLogger(opts.logPath, opts.rotation, core.SystemLocation())
	orch := core.NewOrchestrator(core.Options{
		SettingsPath:  opts.settingsPath,
		DatabasesPath: opts.databasesPath,
		Verbose:       opts.verbose,
		Logger:        logger,
		Console:       console,
		Runner:        runner.NewExecRunner(),
	})

	summary, err := orch.Run(ctx)
	if err != nil {
		return err
	}
	if opts.verbose && !summary.Aborted {
		console.Info().
			Str("run_id", summary.RunID).
			Str("host", summary.Host).
			Int("succeeded", summary.Succeeded()).
			Int("failed", summary.Failed()).
			Msg("Cleanup run finished")
	}
	return nil
}

func newConsole(out io.Writer) zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		FormatMessage: func(i any) string {
			if msg, ok := i.(string); ok {
				return msg
			}
			return fmt.Sprintf("%v", i)
		},
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
