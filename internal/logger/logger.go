// internal/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is a logging severity
type Level int

// Log levels
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	level    = LevelWarn
	mu       sync.Mutex
	debugLog = log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
	infoLog  = log.New(os.Stderr, "[INFO] ", log.LstdFlags)
	warnLog  = log.New(os.Stderr, "[WARN] ", log.LstdFlags)
	errorLog = log.New(os.Stderr, "[ERROR] ", log.LstdFlags)
)

// Init resets the loggers to stderr at the default level.
// The report itself owns stdout.
func Init() {
	SetOutput(os.Stderr)
	mu.Lock()
	level = LevelWarn
	mu.Unlock()
}

// SetOutput sets the output for all loggers
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	debugLog.SetOutput(w)
	infoLog.SetOutput(w)
	warnLog.SetOutput(w)
	errorLog.SetOutput(w)
}

// ParseLevel maps a level name to a Level
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning", "":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelWarn, fmt.Errorf("unknown log level %q", levelStr)
	}
}

// SetLevel sets the log level. Unknown names fall back to warn.
func SetLevel(levelStr string) {
	l, _ := ParseLevel(levelStr)

	mu.Lock()
	defer mu.Unlock()
	level = l
}

func enabled(l Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return level <= l
}

// Debug logs a debug message
func Debug(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		debugLog.Output(2, fmt.Sprintf(format, v...))
	}
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		infoLog.Output(2, fmt.Sprintf(format, v...))
	}
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		warnLog.Output(2, fmt.Sprintf(format, v...))
	}
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	if enabled(LevelError) {
		errorLog.Output(2, fmt.Sprintf(format, v...))
	}
}
