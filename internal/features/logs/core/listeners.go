package logs_core

// LogListener is notified after every Log call. Implementations must not call
// back into the store and must return quickly.
type LogListener interface {
	OnLogStored(entry *LogEntry)
	OnLogRejected(level LogLevel, reason RejectReason)
}
