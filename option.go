package alarmq

import (
	"io"

	"github.com/viant/alarmq/internal/logging"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option represents alarmq service option
type Option func(s *Service)

// WithConfig sets the service configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithLogger sets the logger shared by queues and workers
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithLogWriter sets the destination of the logger built from Config.Log
func WithLogWriter(w io.Writer) Option {
	return func(s *Service) {
		s.logWriter = w
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter, for example
// OTLP or an in-memory exporter. It enables tracing regardless of Config.Tracing.Enabled.
func WithTracingExporter(exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.exporter = exporter
	}
}
