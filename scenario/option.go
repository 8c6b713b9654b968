package scenario

import "github.com/viant/alarmq/internal/logging"

// Option represents runner option
type Option func(r *Runner)

// WithLogger sets the logger used for producer and consumer trace lines
func WithLogger(logger *logging.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithSeed overrides the scenario seed; zero keeps the scenario seed
func WithSeed(seed uint64) Option {
	return func(r *Runner) {
		r.seed = seed
	}
}
