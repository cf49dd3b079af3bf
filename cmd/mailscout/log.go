package main

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger returns a text logger writing to a rotating file at path. With
// verbose set it also writes to stderr and includes debug records. An empty
// path disables the file.
func newLogger(path string, verbose bool, stderr io.Writer) (*slog.Logger, io.Closer) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if path != "" {
		file := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		}
		writers = append(writers, file)
		closer = file
	}

	level := slog.LevelInfo
	if verbose {
		writers = append(writers, stderr)
		level = slog.LevelDebug
	}

	if len(writers) == 0 {
		return slog.New(slog.DiscardHandler), closer
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer
}
