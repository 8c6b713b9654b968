package messaging

import (
	"context"
)

// Queue represents a two-class message queue for any payload type.
// Alarm messages are always delivered before normal ones.
type Queue[T any] interface {
	// Publish adds a payload of the given kind to the queue. It blocks while the
	// alarm slot is occupied and returns ctx.Err() if the context ends first.
	Publish(ctx context.Context, payload T, kind Kind) error

	// Consume retrieves a single message, blocking until one is available or
	// the context ends.
	Consume(ctx context.Context) (*Message[T], error)

	// Size returns the number of pending messages (advisory snapshot).
	Size() int

	// AlarmPresent reports whether an alarm message is pending (advisory snapshot).
	AlarmPresent() bool
}

// Message represents a message retrieved from a queue
type Message[T any] struct {
	Payload T
	Kind    Kind
}

// NewMessage creates a message
func NewMessage[T any](payload T, kind Kind) *Message[T] {
	return &Message[T]{Payload: payload, Kind: kind}
}
