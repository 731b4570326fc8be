package logger

import (
	"strings"
)

var (
	// Global logger instance
	globalLogger = NewDefault()
)

// Configure applies level and format names (as found in LOG_LEVEL and
// LOG_FORMAT) to the global logger. Unknown names leave the setting unchanged.
func Configure(level, format string) {
	if l := ParseLevel(level); l != -1 {
		globalLogger.SetLevel(l)
	}
	if f := ParseFormat(format); f != -1 {
		globalLogger.SetFormat(f)
	}
}

// ParseLevel parses a log level name, returning -1 when unknown
func ParseLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return -1
	}
}

// ParseFormat parses a log format name, returning -1 when unknown
func ParseFormat(format string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat
	case "text":
		return TextFormat
	default:
		return -1
	}
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger = logger
}

// Component returns a global logger scoped to a component
func Component(name string) *Logger {
	return globalLogger.WithComponent(name)
}

// Info logs an info message using the global logger
func Info(message string, fields ...Fields) {
	globalLogger.log(INFO, message, firstFields(fields), nil)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...Fields) {
	globalLogger.log(WARN, message, firstFields(fields), nil)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...Fields) {
	globalLogger.log(ERROR, message, firstFields(fields), err)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...Fields) {
	globalLogger.log(FATAL, message, firstFields(fields), err)
}
