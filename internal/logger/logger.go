package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance used by the binaries.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a process-wide logger configured with the provided level.
// The first call initializes the logger; subsequent calls ignore the
// arguments and return the already initialized instance.
// Library packages receive a *Logger through their constructors instead.
func Get(level string, development bool) *Logger {
	once.Do(func() {
		globalLogger = New(level, development)
	})
	return globalLogger
}
