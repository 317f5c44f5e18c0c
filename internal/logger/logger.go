package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger represents application logger.
type Logger struct {
	*slog.Logger
}

// File configures the rotated log file. An empty Path disables it.
type File struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New creates a Logger writing text records at the given level to stdout.
func New(level int) *Logger {
	return NewWithFile(level, File{})
}

// NewWithFile is New with stdout teed into a size-rotated file.
func NewWithFile(level int, file File) *Logger {
	var w io.Writer = os.Stdout
	if file.Path != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   file.Path,
			MaxSize:    file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAge:     file.MaxAgeDays,
			Compress:   file.Compress,
		})
	}

	return &Logger{
		Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
