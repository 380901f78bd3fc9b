package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"pg-vacuum/pkg/constants"
)

// Severity of a log entry.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityError Severity = "ERROR"
)

// Rotation configures size based rotation of the log file. The zero value
// disables rotation and the file grows without bound.
type Rotation struct {
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// Enabled reports whether rotation was requested.
func (r Rotation) Enabled() bool {
	return r.MaxSize > 0
}

// SinkOpener opens the log sink for a single entry. The returned writer is
// closed right after the entry is written.
type SinkOpener func() (io.WriteCloser, error)

// Logger appends timestamped entries to a sink. It keeps no handle open
// between entries and is not safe for concurrent use.
type Logger struct {
	open SinkOpener
	loc  *time.Location
	now  func() time.Time
}

// NewLogger creates a Logger writing through open. A nil loc means time.Local.
func NewLogger(open SinkOpener, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.Local
	}
	return &Logger{open: open, loc: loc, now: time.Now}
}

// NewFileLogger creates a Logger appending to the file at path.
func NewFileLogger(path string, rotation Rotation, loc *time.Location) *Logger {
	if !rotation.Enabled() {
		return NewLogger(appendFileOpener(path), loc)
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotation.MaxSize,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAge,
		Compress:   rotation.Compress,
		LocalTime:  true,
	}
	// lumberjack reopens the file on the next Write after Close.
	return NewLogger(func() (io.WriteCloser, error) { return lj, nil }, loc)
}

func appendFileOpener(path string) SinkOpener {
	return func() (io.WriteCloser, error) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create log directory %s: %w", dir, err)
			}
		}
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
}

// Log appends one entry:
//
//	2024-10-13 02:00:00 INFO: message
//
// followed by an empty line.
func (l *Logger) Log(severity Severity, message string) error {
	w, err := l.open()
	if err != nil {
		return fmt.Errorf("open log sink: %w", err)
	}

	timestamp := l.now().In(l.loc).Format(constants.LogTimeLayout)
	_, werr := fmt.Fprintf(w, "%s %s: %s\n\n", timestamp, severity, message)
	cerr := w.Close()
	if werr != nil {
		return fmt.Errorf("write log entry: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("close log sink: %w", cerr)
	}
	return nil
}

// Info logs message with INFO severity.
func (l *Logger) Info(message string) error {
	return l.Log(SeverityInfo, message)
}

// Error logs message with ERROR severity.
func (l *Logger) Error(message string) error {
	return l.Log(SeverityError, message)
}
