package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns an info-level slog logger backed by a buffer and the buffer for assertions.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	return NewLevelBufferLogger(slog.LevelInfo)
}

// NewLevelBufferLogger is NewBufferLogger with a configurable minimum level,
// for asserting on debug output.
func NewLevelBufferLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level}))
	return logger, &buf
}
