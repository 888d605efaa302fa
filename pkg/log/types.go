package log

// Logger is a leveled key/value logger.
type Logger interface {
	// Debug logs low-level diagnostics, such as a swallowed probe failure.
	Debug(msg string, keysAndValues ...any)
	// Info logs routine progress.
	Info(msg string, keysAndValues ...any)
	// Warn logs an unexpected situation the caller can continue from.
	Warn(msg string, keysAndValues ...any)
	// Error logs a failure that stopped an operation.
	Error(msg string, keysAndValues ...any)

	// WithKV returns a logger that adds key/value to every entry.
	WithKV(key string, value any) Logger
	// GetAllKV returns the key/value pairs added with WithKV.
	GetAllKV() []any
	// WithName returns a logger whose name is extended with name.
	WithName(name string) Logger
	// Name returns the dotted logger name.
	Name() string
	// AddCallerSkip returns a logger that reports the caller skip frames higher.
	AddCallerSkip(skip int) Logger
}

// Level is the severity of a log entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// SpanEventRecorder receives log entries as trace span events.
type SpanEventRecorder interface {
	TraceID() string
	SpanID() string

	// RecordEvent adds a named event with key/value attributes.
	RecordEvent(name string, keysAndValues ...any)
	// RecordError adds a named event and marks the span as failed.
	RecordError(name string, keysAndValues ...any)
}
