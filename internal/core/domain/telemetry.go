package domain

import "strings"

// ValuationStatus represents the lifecycle state of an instrument valuation.
type ValuationStatus string

const (
	// StatusPending indicates the instrument is waiting to be valued.
	StatusPending ValuationStatus = "pending"
	// StatusRunning indicates the instrument is being valued.
	StatusRunning ValuationStatus = "running"
	// StatusCompleted indicates the valuation produced new results.
	StatusCompleted ValuationStatus = "completed"
	// StatusFailed indicates the valuation failed.
	StatusFailed ValuationStatus = "failed"
	// StatusUnchanged indicates the inputs and results match the stored valuation.
	StatusUnchanged ValuationStatus = "unchanged"
	// StatusExpired indicates the instrument has expired and carries no value.
	StatusExpired ValuationStatus = "expired"
)

// IsTerminal checks if a status is a terminal state.
func (s ValuationStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusUnchanged, StatusExpired:
		return true
	default:
		return false
	}
}

// NormalizeValuationStatus converts a string to a ValuationStatus, defaulting to pending if unknown.
func NormalizeValuationStatus(s string) ValuationStatus {
	switch status := ValuationStatus(strings.ToLower(s)); status {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed, StatusUnchanged, StatusExpired:
		return status
	default:
		return StatusPending
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
