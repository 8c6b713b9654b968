package alarmq

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/alarmq/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the queue configuration. It can
// be populated from JSON or YAML; LoadConfig starts from DefaultConfig so
// omitted fields keep their defaults.
type Config struct {
	Queue   QueueConfig    `json:"queue" yaml:"queue"`
	Log     logging.Config `json:"log" yaml:"log"`
	Tracing TracingConfig  `json:"tracing" yaml:"tracing"`
}

// QueueConfig defines alarm queue settings
type QueueConfig struct {
	// Capacity limits pending normal messages, 0 means unbounded
	Capacity int `json:"capacity" yaml:"capacity"`
}

// TracingConfig defines OpenTelemetry settings
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	// Output is a trace file path; stdout when empty
	Output string `json:"output" yaml:"output"`
}

// DefaultConfig returns a Config populated with default values. Callers may
// modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Log: logging.DefaultConfig(),
		Tracing: TracingConfig{
			ServiceName:    "alarmq",
			ServiceVersion: "0.1.0",
		},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Queue.Capacity < 0 {
		errs = append(errs, fmt.Errorf("queue.capacity must be >= 0"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		errs = append(errs, fmt.Errorf("tracing.serviceName is required when tracing is enabled"))
	}
	return errors.Join(errs...)
}

// LoadConfig loads a YAML (or JSON) configuration from URL. ${env.KEY}
// expressions are replaced with environment values before decoding.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return cfg, nil
}
