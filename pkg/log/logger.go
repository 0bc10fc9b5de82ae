package log

// Logger receives resolution events.
// Pass NoopLogger to disable logging.
type Logger interface {
	// Log records an event. Implementations must be safe for concurrent use.
	Log(event Event)
}

// NoopLogger discards all events. It is usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
