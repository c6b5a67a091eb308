package domain

import "time"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetMaxFileSize() int64
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetMinTextLength() int
	GetPreviewLength() int
	GetAllowedOrigins() []string
	GetSupabaseURL() string
	GetSupabaseKey() string
	AuthEnabled() bool
}

// MetricsRecorder receives one observation per classification attempt.
// outcome is "ok" or an ErrorKind.
type MetricsRecorder interface {
	ObserveClassification(format Format, outcome string, modelLatency time.Duration)
}
