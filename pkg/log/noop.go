package log

// NoopLogger discards all log messages. It is the default logger for
// library use so that pushship stays quiet unless a caller opts in.
type NoopLogger struct{}

// NewNoop creates a logger that discards everything.
func NewNoop() *NoopLogger {
	return &NoopLogger{}
}

func (*NoopLogger) Debug(msg string, fields ...Field) {}
func (*NoopLogger) Info(msg string, fields ...Field)  {}
func (*NoopLogger) Warn(msg string, fields ...Field)  {}
func (*NoopLogger) Error(msg string, fields ...Field) {}
