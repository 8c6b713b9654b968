package alarmq

import (
	"context"
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/viant/afs/embed"
	"github.com/viant/alarmq/internal/logging"
)

//go:embed testdata/*
var testFS embed.FS

func TestLoadConfig(t *testing.T) {
	t.Setenv("ALARMQ_LOG_LEVEL", "debug")
	ctx := context.Background()

	localDir := t.TempDir()
	localURL := filepath.Join(localDir, "config.yaml")
	require.NoError(t, os.WriteFile(localURL, []byte("queue:\n  capacity: 3\n"), 0644))

	var testCases = []struct {
		description string
		URL         string
		embedded    bool
		expect      *Config
		expectErr   bool
	}{
		{
			description: "embedded yaml with env expansion",
			URL:         "embed:///testdata/config.yaml",
			embedded:    true,
			expect: &Config{
				Queue: QueueConfig{Capacity: 64},
				Log:   logging.Config{Level: "debug", Time: false},
				Tracing: TracingConfig{
					Enabled:        true,
					ServiceName:    "alarmq-demo",
					ServiceVersion: "0.1.0",
				},
			},
		},
		{
			description: "local file keeps defaults",
			URL:         localURL,
			expect: func() *Config {
				cfg := DefaultConfig()
				cfg.Queue.Capacity = 3
				return cfg
			}(),
		},
		{
			description: "invalid values",
			URL:         "embed:///testdata/invalid.yaml",
			embedded:    true,
			expectErr:   true,
		},
		{
			description: "missing file",
			URL:         filepath.Join(localDir, "missing.yaml"),
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		var cfg *Config
		var err error
		if testCase.embedded {
			cfg, err = LoadConfig(ctx, testCase.URL, &testFS)
		} else {
			cfg, err = LoadConfig(ctx, testCase.URL)
		}
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, cfg, testCase.description)
	}
}

func TestConfig_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		adjust      func(c *Config)
		expectErr   bool
	}{
		{description: "defaults", adjust: func(c *Config) {}},
		{description: "negative capacity", adjust: func(c *Config) { c.Queue.Capacity = -1 }, expectErr: true},
		{description: "unknown level", adjust: func(c *Config) { c.Log.Level = "loud" }, expectErr: true},
		{description: "tracing without name", adjust: func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.ServiceName = ""
		}, expectErr: true},
	}
	for _, testCase := range testCases {
		cfg := DefaultConfig()
		testCase.adjust(cfg)
		err := cfg.Validate()
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
	}
	var nilConfig *Config
	assert.NoError(t, nilConfig.Validate())
}
