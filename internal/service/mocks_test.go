package service

import (
	"context"
	"sync"
	"time"

	"financial-doc-classifier/internal/domain"
)

// MockLogger records messages for assertions.
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.append("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	if err != nil {
		m.append("ERROR: " + msg + " - " + err.Error())
		return
	}
	m.append("ERROR: " + msg)
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.append("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.append("WARN: " + msg)
}

func (m *MockLogger) append(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, s)
}

// MockModelClient returns a canned reply and records what it was sent.
type MockModelClient struct {
	reply    string
	err      error
	calls    int
	requests []domain.ModelRequest
}

func (m *MockModelClient) Generate(ctx context.Context, req domain.ModelRequest) (string, error) {
	m.calls++
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// MockMetrics captures classification observations.
type MockMetrics struct {
	outcomes []string
	formats  []domain.Format
}

func (m *MockMetrics) ObserveClassification(format domain.Format, outcome string, _ time.Duration) {
	m.formats = append(m.formats, format)
	m.outcomes = append(m.outcomes, outcome)
}
