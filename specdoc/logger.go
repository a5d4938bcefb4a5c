package specdoc

import "log/slog"

// Logger is the interface specdoc uses for structured logging.
//
// The interface is minimal yet compatible with popular logging libraries. It
// uses variadic key-value pairs for structured attributes, following the same
// convention as log/slog:
//
//	logger.Debug("fetched spec", "url", u, "bytes", len(data))
type Logger interface {
	// Debug logs at debug level.
	Debug(msg string, attrs ...any)

	// Info logs at info level.
	Info(msg string, attrs ...any)

	// Warn logs at warn level.
	Warn(msg string, attrs ...any)

	// Error logs at error level.
	Error(msg string, attrs ...any)
}

// NopLogger is a no-op logger that discards all output.
// It is the default logger used when no logger is configured.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(_ string, _ ...any) {}

// Info implements Logger.
func (NopLogger) Info(_ string, _ ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(_ string, _ ...any) {}

// Error implements Logger.
func (NopLogger) Error(_ string, _ ...any) {}

// Ensure NopLogger implements Logger at compile time.
var _ Logger = NopLogger{}

// SlogAdapter wraps a *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter from a *slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements Logger.
func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.logger.Debug(msg, attrs...) }

// Info implements Logger.
func (s *SlogAdapter) Info(msg string, attrs ...any) { s.logger.Info(msg, attrs...) }

// Warn implements Logger.
func (s *SlogAdapter) Warn(msg string, attrs ...any) { s.logger.Warn(msg, attrs...) }

// Error implements Logger.
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.logger.Error(msg, attrs...) }

// Ensure SlogAdapter implements Logger at compile time.
var _ Logger = (*SlogAdapter)(nil)
