package alarmq

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// expandEnv replaces every ${env.KEY} in text with the value of the
// environment variable KEY, or "" when unset. Keys may hold letters, digits
// and '_'; anything else leaves the expression as literal text.
func expandEnv(text string) string {
	if !strings.Contains(text, envPrefix) {
		return text
	}
	var b strings.Builder
	rest := text
	for {
		before, after, found := strings.Cut(rest, envPrefix)
		b.WriteString(before)
		if !found {
			break
		}
		key, tail, closed := strings.Cut(after, "}")
		if !closed {
			b.WriteString(envPrefix)
			b.WriteString(after)
			break
		}
		if !isEnvKey(key) {
			// keep the prefix literal and rescan what follows it for nested expressions
			b.WriteString(envPrefix)
			rest = after
			continue
		}
		b.WriteString(os.Getenv(key))
		rest = tail
	}
	return b.String()
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
