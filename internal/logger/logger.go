// Package logger provides leveled logging for the gateway.
// Messages are written through the standard log package with a [LEVEL]
// prefix. The level can be changed at runtime, e.g. on config reload.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

var (
	mu    sync.RWMutex
	level = LevelInfo
	std   = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// GetLevel returns the current minimum level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetOutput sets the output writer. Defaults to os.Stderr.
// Timestamps are dropped for any writer other than stderr so tests can
// match lines exactly.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	flags := 0
	if w == os.Stderr {
		flags = log.LstdFlags
	}
	std = log.New(w, "", flags)
}

func logf(l Level, tag, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < level {
		return
	}
	std.Printf("["+tag+"] "+format, args...)
}

// Debug logs diagnostic detail.
func Debug(format string, args ...any) { logf(LevelDebug, "DEBUG", format, args...) }

// Info logs normal operation.
func Info(format string, args ...any) { logf(LevelInfo, "INFO", format, args...) }

// Warn logs recoverable problems.
func Warn(format string, args ...any) { logf(LevelWarn, "WARN", format, args...) }

// Error logs failures.
func Error(format string, args ...any) { logf(LevelError, "ERROR", format, args...) }
