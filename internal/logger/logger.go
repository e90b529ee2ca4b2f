// Package logger provides leveled console logging for the paperless CLI.
// Warnings and notices always reach stderr; debug and info messages only
// appear once verbose mode is enabled with --verbose.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level orders log messages by importance.
type Level int

// Log levels, least important first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelNotice
	LevelWarn
)

var levelTags = map[Level]string{
	LevelDebug:  "[DEBUG] ",
	LevelInfo:   "[INFO] ",
	LevelNotice: "",
	LevelWarn:   "[WARN] ",
}

var (
	mu        sync.RWMutex
	threshold           = LevelNotice
	output    io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	if v {
		threshold = LevelDebug
	} else {
		threshold = LevelNotice
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return threshold <= LevelDebug
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if level < threshold {
		return
	}
	fmt.Fprintf(output, levelTags[level]+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Notice prints an untagged message the user should always see,
// such as the writes a no-op run skipped.
func Notice(format string, args ...any) {
	logf(LevelNotice, format, args...)
}

// Warn prints a warning.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if threshold <= LevelDebug {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
