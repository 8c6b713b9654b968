package processor

import (
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/viant/alarmq/internal/logging"
)

// Option represents a processor option
type Option func(s *settings)

type settings struct {
	config  Config
	logger  *logging.Logger
	limiter *catrate.Limiter
}

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *settings) {
		s.config = config
	}
}

// WithWorkers sets the number of worker goroutines
func WithWorkers(count int) Option {
	return func(s *settings) {
		s.config.WorkerCount = count
	}
}

// WithLimit sets the number of messages each worker consumes before exiting; 0 means unlimited
func WithLimit(limit int) Option {
	return func(s *settings) {
		s.config.Limit = limit
	}
}

// WithStartDelay delays the first receive of every worker
func WithStartDelay(delay time.Duration) Option {
	return func(s *settings) {
		s.config.StartDelay = delay
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithErrorLogRates limits consume failure logs per worker, for example
// {time.Second: 5, time.Minute: 60}; an empty map disables limiting
func WithErrorLogRates(rates map[time.Duration]int) Option {
	return func(s *settings) {
		s.limiter = nil
		if len(rates) > 0 {
			s.limiter = catrate.NewLimiter(rates)
		}
	}
}
