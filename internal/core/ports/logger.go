// Package ports defines the core interfaces for the application.
package ports

// Logger defines the interface for logging messages.
// It is the console sink of the restore pipeline: Info writes a line, Warn writes a warning.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error.
	Error(err error)
	// Debug logs a message that is only shown in verbose mode.
	Debug(msg string)
	// SetVerbose toggles verbose mode.
	SetVerbose(enabled bool)
}
