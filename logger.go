package fixedrecord

// Fields is a minimal structured field map for logs.
type Fields map[string]interface{}

// Logger is a tiny leveled logger. Adapters for zap and logrus live in
// the log subpackages. A Record built without WithLogger does not log.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

// NopLogger discards everything. It is the logger of a Record built
// without WithLogger.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
