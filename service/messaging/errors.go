package messaging

import "errors"

// Queue errors. Alarm slot contention is never reported as an error, senders
// block instead.

var (
	// ErrInitFailure is returned when a queue cannot be constructed, for
	// example because of invalid option values.
	ErrInitFailure = errors.New("messaging: queue init failure")

	// ErrNoRoom is returned when a normal message cannot be stored because the
	// underlying buffer could not grow. The queue is left unchanged and the
	// caller may retry.
	ErrNoRoom = errors.New("messaging: no room")

	// ErrOutOfMemory is an alias of ErrNoRoom.
	ErrOutOfMemory = ErrNoRoom

	// ErrInvalidKind is returned for a kind other than Normal or Alarm.
	ErrInvalidKind = errors.New("messaging: invalid message kind")
)
