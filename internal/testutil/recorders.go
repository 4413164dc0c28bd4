package testutil

import (
	"slices"
	"sync"
	"time"

	"github.com/lexfrei/go-streak/internal/observability"
)

// Metrics is a thread-safe MetricsRecorder that keeps what it was given.
type Metrics struct {
	mu         sync.Mutex
	requests   []int
	retries    []int
	rateLimits []time.Duration
	errors     []string
}

var _ observability.MetricsRecorder = (*Metrics)(nil)

func (m *Metrics) RecordHTTPRequest(_, _ string, statusCode int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, statusCode)
}

func (m *Metrics) RecordRetry(attempt int, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retries = append(m.retries, attempt)
}

func (m *Metrics) RecordRateLimit(_ string, wait time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimits = append(m.rateLimits, wait)
}

// RecordError stores "operation:errorType".
func (m *Metrics) RecordError(operation, errorType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, operation+":"+errorType)
}

// Requests returns the recorded status codes, 0 for failed round trips.
func (m *Metrics) Requests() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.requests)
}

// Retries returns the recorded retry attempt numbers.
func (m *Metrics) Retries() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.retries)
}

// RateLimits returns the recorded limiter waits.
func (m *Metrics) RateLimits() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.rateLimits)
}

// Errors returns the recorded errors as "operation:errorType".
func (m *Metrics) Errors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.errors)
}

// Logger keeps "level: message" lines.
type Logger struct {
	mu       *sync.Mutex
	messages *[]string
	fields   []observability.Field
}

var _ observability.Logger = (*Logger)(nil)

// NewLogger returns an empty recording Logger.
func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, messages: &[]string{}}
}

func (l *Logger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.messages = append(*l.messages, level+": "+msg)
}

func (l *Logger) Debug(msg string, _ ...observability.Field) { l.log("debug", msg) }
func (l *Logger) Info(msg string, _ ...observability.Field)  { l.log("info", msg) }
func (l *Logger) Warn(msg string, _ ...observability.Field)  { l.log("warn", msg) }
func (l *Logger) Error(msg string, _ ...observability.Field) { l.log("error", msg) }

// With returns a Logger sharing the same message buffer.
//
//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l *Logger) With(fields ...observability.Field) observability.Logger {
	return &Logger{mu: l.mu, messages: l.messages, fields: append(slices.Clone(l.fields), fields...)}
}

// Messages returns every line logged so far.
func (l *Logger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(*l.messages)
}
