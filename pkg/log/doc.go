// Package log is the structured logger used across the SDK.
//
// Library packages never construct a logger. They read one from the context
// with FromContext and fall back to a NoopLogger when the caller did not
// attach any:
//
//	lg := log.NewZapLogger(log.Config{Format: "logfmt", Level: log.LevelDebug})
//	ctx = log.SetContextLogger(ctx, lg)
//
//	signed := apps.Safe.IsMessageSigned(ctx, "hello", sig)
//
// When the context already carries a valid OpenTelemetry span, SetContextLogger
// wraps the logger in a SpanLogger so every entry is also added to the span as
// an event, and the trace and span ids are added to every log line.
package log
