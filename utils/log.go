package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

type LogLevel string

const (
	Info  LogLevel = "INFO"
	Warn  LogLevel = "WARN"
	Error LogLevel = "ERROR"
)

// NewLogger opens (or creates) the log file in append mode and returns a
// logger that writes to it and mirrors to stdout. Timestamps are rendered in
// loc. The returned closer releases the file.
func NewLogger(path string, loc *time.Location) (zerolog.Logger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return NewLoggerTo(zerolog.MultiLevelWriter(f, console), RealClock{}, loc), f, nil
}

// NewLoggerTo builds a logger on an arbitrary writer.
func NewLoggerTo(w io.Writer, clock Clock, loc *time.Location) zerolog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	stamp := zerolog.HookFunc(func(e *zerolog.Event, _ zerolog.Level, _ string) {
		e.Time(zerolog.TimestampFieldName, clock.Now().In(loc))
	})
	return zerolog.New(w).Hook(stamp).Level(zerolog.InfoLevel)
}

// LogEvent writes one module/operation/extra-info record at the given level.
func LogEvent(logger zerolog.Logger, level LogLevel, module, operation, extraInfo string) {
	var e *zerolog.Event
	switch level {
	case Warn:
		e = logger.Warn()
	case Error:
		e = logger.Error()
	default:
		e = logger.Info()
	}
	e.Str("module", module).Str("operation", operation).Msg(extraInfo)
}

func LogInfo(logger zerolog.Logger, module, operation, extraInfo string) {
	LogEvent(logger, Info, module, operation, extraInfo)
}

func LogWarn(logger zerolog.Logger, module, operation, extraInfo string) {
	LogEvent(logger, Warn, module, operation, extraInfo)
}

func LogError(logger zerolog.Logger, module, operation, extraInfo string) {
	LogEvent(logger, Error, module, operation, extraInfo)
}
