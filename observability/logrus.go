package observability

import (
	"github.com/sirupsen/logrus"
)

type logrusLogger struct {
	logger logrus.FieldLogger
}

// NewLogrusLogger adapts a logrus logger or entry to Logger.
// A nil logger means logrus.StandardLogger().
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NewLogrusLogger(logger logrus.FieldLogger) Logger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &logrusLogger{logger: logger}
}

func (l *logrusLogger) Debug(msg string, fields ...Field) {
	l.entry(fields).Debug(msg)
}

func (l *logrusLogger) Info(msg string, fields ...Field) {
	l.entry(fields).Info(msg)
}

func (l *logrusLogger) Warn(msg string, fields ...Field) {
	l.entry(fields).Warn(msg)
}

func (l *logrusLogger) Error(msg string, fields ...Field) {
	l.entry(fields).Error(msg)
}

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l *logrusLogger) With(fields ...Field) Logger {
	return &logrusLogger{logger: l.entry(fields)}
}

func (l *logrusLogger) entry(fields []Field) logrus.FieldLogger {
	if len(fields) == 0 {
		return l.logger
	}
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return l.logger.WithFields(data)
}
