package alarm

import "github.com/joeycumines/logiface"

// Option represents a queue option
type Option func(c *config)

type config struct {
	capacity int
	reserve  func(slots int) error
	logger   *logiface.Logger[logiface.Event]
}

// WithCapacity limits the number of pending normal messages; zero means unbounded.
// Sends beyond the limit fail with messaging.ErrNoRoom.
func WithCapacity(capacity int) Option {
	return func(c *config) {
		c.capacity = capacity
	}
}

// WithReserve sets a hook consulted before the normal buffer grows to the given
// number of slots. Returning an error rejects the triggering send with
// messaging.ErrNoRoom, which models an allocation failure.
func WithReserve(fn func(slots int) error) Option {
	return func(c *config) {
		c.reserve = fn
	}
}

// WithLogger sets a logger for blocking/unblocking trace events
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return func(c *config) {
		c.logger = logger
	}
}
