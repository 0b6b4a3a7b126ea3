package main

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
)

// newLogger builds the zerolog logger for the CLI. Output goes to a file
// next to the executable: the terminal belongs to the interactive session.
func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	var out io.Writer
	logFile, err := os.OpenFile(logPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		out = os.Stderr
	} else {
		out = logFile
	}

	return zerolog.New(out).With().
		Str("role", "tcptalk").
		Timestamp().
		Caller().
		Logger()
}

// logPath names the "logs" file kept next to the executable.
func logPath() string {
	execPath, _ := os.Executable()
	return filepath.Join(filepath.Dir(execPath), "logs")
}

// clientLogger adapts zerolog to the client logging interface
type clientLogger struct {
	log zerolog.Logger
}

func newClientLogger(log zerolog.Logger) *clientLogger {
	return &clientLogger{log: log}
}

func (l *clientLogger) Debug(msg string, args ...interface{}) {
	l.log.Debug().Msgf(msg, args...)
}

func (l *clientLogger) Info(msg string, args ...interface{}) {
	l.log.Info().Msgf(msg, args...)
}

func (l *clientLogger) Warn(msg string, args ...interface{}) {
	l.log.Warn().Msgf(msg, args...)
}

func (l *clientLogger) Error(msg string, args ...interface{}) {
	l.log.Error().Msgf(msg, args...)
}
