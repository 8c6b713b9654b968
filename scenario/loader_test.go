package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/alarmq/service/messaging"
)

func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{"alarm-blocking", "mixed", "priority"}, Builtins())
}

func TestLoader_Builtin(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader()
	for _, name := range Builtins() {
		aScenario, err := loader.Builtin(ctx, name)
		require.NoError(t, err, name)
		assert.Equal(t, name, aScenario.Name)
		assert.NotEmpty(t, aScenario.Description, name)
	}

	priority, err := loader.Builtin(ctx, "priority")
	require.NoError(t, err)
	assert.Equal(t, Consumers{Workers: 1, Receive: 5, StartDelay: 350 * time.Millisecond}, priority.Consumers)
	require.Len(t, priority.Producers, 1)
	assert.Equal(t, &Step{Kind: messaging.Alarm, Payload: 999, Delay: Delay{Min: 100 * time.Millisecond}}, priority.Producers[0].Steps[2])

	_, err = loader.Builtin(ctx, "missing")
	assert.Error(t, err)
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	write := func(name, content string) string {
		URL := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(URL, []byte(content), 0644))
		return URL
	}

	var testCases = []struct {
		description string
		URL         string
		expect      *Scenario
		expectErr   bool
	}{
		{
			description: "name from file",
			URL: write("burst.yaml", `producers:
  - id: 7
    steps:
      - {kind: alarm, payload: 1, delay: {min: 5ms, max: 10ms}}
      - {payload: 2}
consumers: {workers: 1, receive: 2}
`),
			expect: &Scenario{
				Name: "burst",
				Producers: []*Producer{{ID: 7, Steps: []*Step{
					{Kind: messaging.Alarm, Payload: 1, Delay: Delay{Min: 5 * time.Millisecond, Max: 10 * time.Millisecond}},
					{Kind: messaging.Normal, Payload: 2},
				}}},
				Consumers: Consumers{Workers: 1, Receive: 2},
			},
		},
		{
			description: "unknown field",
			URL:         write("unknown.yaml", "name: x\nproducer: []\n"),
			expectErr:   true,
		},
		{
			description: "unknown kind",
			URL:         write("kind.yaml", "name: x\nproducers: [{id: 1, steps: [{kind: urgent}]}]\n"),
			expectErr:   true,
		},
		{
			description: "invalid scenario",
			URL:         write("invalid.yaml", "name: x\nproducers: [{id: 1, steps: [{kind: normal}]}]\nconsumers: {workers: 2, receive: 1}\n"),
			expectErr:   true,
		},
		{
			description: "missing file",
			URL:         filepath.Join(dir, "missing.yaml"),
			expectErr:   true,
		},
	}
	loader := NewLoader()
	for _, testCase := range testCases {
		actual, err := loader.Load(ctx, testCase.URL)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}

	resolved, err := loader.Resolve(ctx, "mixed")
	require.NoError(t, err)
	assert.Equal(t, "mixed", resolved.Name)
	resolved, err = loader.Resolve(ctx, filepath.Join(dir, "burst.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "burst", resolved.Name)
}
