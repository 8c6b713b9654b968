package messaging

import (
	"fmt"
	"strings"
)

// Kind represents a message priority class
type Kind int

const (
	// Normal messages are delivered in FIFO order behind any pending alarm
	Normal Kind = iota
	// Alarm messages pre-empt normal ones; at most one can be pending
	Alarm
)

// IsValid returns true if kind is a known priority class
func (k Kind) IsValid() bool {
	return k == Normal || k == Alarm
}

func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Alarm:
		return "alarm"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses kind name (case-insensitive)
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal", "":
		return Normal, nil
	case "alarm":
		return Alarm, nil
	}
	return Normal, fmt.Errorf("%w: %q", ErrInvalidKind, name)
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used by both JSON and YAML decoders
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
