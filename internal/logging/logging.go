// Package logging builds the structured JSON logger shared by alarmq components.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the logger type passed between components
type Logger = logiface.Logger[logiface.Event]

// Config represents logger configuration
type Config struct {
	// Level is one of trace, debug, info, notice, warning, error or off
	Level string `json:"level" yaml:"level"`
	// Time adds a timestamp field to every event
	Time bool `json:"time" yaml:"time"`
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{Level: "info", Time: true}
}

var levels = map[string]logiface.Level{
	"off":     logiface.LevelDisabled,
	"error":   logiface.LevelError,
	"warning": logiface.LevelWarning,
	"warn":    logiface.LevelWarning,
	"notice":  logiface.LevelNotice,
	"info":    logiface.LevelInformational,
	"debug":   logiface.LevelDebug,
	"trace":   logiface.LevelTrace,
}

// ParseLevel maps a level name to logiface.Level
func ParseLevel(name string) (logiface.Level, error) {
	if name == "" {
		return logiface.LevelInformational, nil
	}
	level, ok := levels[strings.ToLower(name)]
	if !ok {
		return logiface.LevelDisabled, fmt.Errorf("unsupported log level: %q", name)
	}
	return level, nil
}

// New creates a logger writing JSON lines to w (os.Stderr when nil)
func New(config Config, w io.Writer) (*Logger, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	options := []stumpy.Option{stumpy.WithWriter(w)}
	if config.Time {
		options = append(options, stumpy.WithTimeField("time"))
	}
	return stumpy.L.New(
		stumpy.L.WithStumpy(options...),
		stumpy.L.WithLevel(level),
	).Logger(), nil
}
