package alarmq

import (
	"fmt"
	"io"

	"github.com/viant/alarmq/internal/logging"
	"github.com/viant/alarmq/service/messaging"
	"github.com/viant/alarmq/service/messaging/alarm"
	"github.com/viant/alarmq/service/messaging/traced"
	"github.com/viant/alarmq/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Service wires configuration, logging and tracing for alarm queues
type Service struct {
	config    *Config
	logger    *logging.Logger
	logWriter io.Writer
	exporter  sdktrace.SpanExporter
	traced    bool
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Logger returns the service logger
func (s *Service) Logger() *logging.Logger {
	return s.logger
}

// Traced reports whether queues returned by QueueOf are traced
func (s *Service) Traced() bool {
	return s.traced
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.logger == nil {
		logger, err := logging.New(s.config.Log, s.logWriter)
		if err != nil {
			return err
		}
		s.logger = logger
	}
	return s.initTracing()
}

func (s *Service) initTracing() error {
	tracingConfig := s.config.Tracing
	switch {
	case s.exporter != nil:
		if err := tracing.InitWithExporter(tracingConfig.ServiceName, tracingConfig.ServiceVersion, s.exporter); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	case tracingConfig.Enabled:
		if err := tracing.Init(tracingConfig.ServiceName, tracingConfig.ServiceVersion, tracingConfig.Output); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	default:
		return nil
	}
	s.traced = true
	return nil
}

// AlarmQueueOf creates an alarm queue configured by the service
func AlarmQueueOf[T any](s *Service) (*alarm.Queue[T], error) {
	return alarm.New[T](
		alarm.WithCapacity(s.config.Queue.Capacity),
		alarm.WithLogger(s.logger),
	)
}

// QueueOf creates an alarm queue exposed through the messaging contract,
// decorated with tracing spans when tracing is enabled.
func QueueOf[T any](s *Service) (messaging.Queue[T], error) {
	queue, err := AlarmQueueOf[T](s)
	if err != nil {
		return nil, err
	}
	if s.traced {
		return traced.New[T](queue), nil
	}
	return queue, nil
}

// New creates an alarmq service
func New(options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
