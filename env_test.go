package alarmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	var testCases = []struct {
		description string
		env         map[string]string
		input       string
		expect      string
	}{
		{description: "no expressions", input: "queue:\n  capacity: 10", expect: "queue:\n  capacity: 10"},
		{description: "single expression", env: map[string]string{"AQ_LEVEL": "debug"}, input: "level: ${env.AQ_LEVEL}", expect: "level: debug"},
		{description: "multiple expressions", env: map[string]string{"AQ_A": "1", "AQ_B": "2"}, input: "${env.AQ_A}-${env.AQ_B}-${env.AQ_A}", expect: "1-2-1"},
		{description: "unset becomes empty", input: "unset=${env.AQ_NOT_SET}-end", expect: "unset=-end"},
		{description: "missing closing brace", input: "start ${env.AQ_X and more", expect: "start ${env.AQ_X and more"},
		{description: "invalid key keeps prefix", env: map[string]string{"AQ_Y": "y"}, input: "${env.A-${env.AQ_Y}}", expect: "${env.A-y}"},
	}

	for _, testCase := range testCases {
		for k, v := range testCase.env {
			t.Setenv(k, v)
		}
		assert.Equal(t, testCase.expect, expandEnv(testCase.input), testCase.description)
	}
}
