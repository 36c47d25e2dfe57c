package prefs

import "log"

// Logger defines the interface the registry and its namespaces log through.
// Implementations should be safe for concurrent use.
type Logger interface {
	// Info logs informational messages
	Info(format string, args ...interface{})

	// Warn logs warning messages
	Warn(format string, args ...interface{})

	// Error logs error messages
	Error(format string, args ...interface{})

	// Debug logs debug messages
	Debug(format string, args ...interface{})
}

// noopLogger is a Logger that does nothing.
type noopLogger struct{}

func (noopLogger) Info(format string, args ...interface{})  {}
func (noopLogger) Warn(format string, args ...interface{})  {}
func (noopLogger) Error(format string, args ...interface{}) {}
func (noopLogger) Debug(format string, args ...interface{}) {}

var defaultLogger Logger = noopLogger{}

// stdLogger adapts the standard library logger to the Logger interface,
// prefixing each line with its level.
type stdLogger struct {
	l *log.Logger
}

// NewStdLogger wraps a *log.Logger. Passing nil uses log.Default().
func NewStdLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}
	return &stdLogger{l: l}
}

func (s *stdLogger) Info(format string, args ...interface{}) {
	s.l.Printf("INFO "+format, args...)
}

func (s *stdLogger) Warn(format string, args ...interface{}) {
	s.l.Printf("WARN "+format, args...)
}

func (s *stdLogger) Error(format string, args ...interface{}) {
	s.l.Printf("ERROR "+format, args...)
}

func (s *stdLogger) Debug(format string, args ...interface{}) {
	s.l.Printf("DEBUG "+format, args...)
}
