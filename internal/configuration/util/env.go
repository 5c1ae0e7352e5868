package util

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var ErrUnsetVariable = errors.New("environment variable is not set")

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ExpandEnvStrict replaces ${NAME} and ${NAME:-fallback}. An unset NAME
// without a fallback is an error. Bare $NAME is left alone.
func ExpandEnvStrict(s string) (string, error) {
	var missing []string

	out := envVarPattern.ReplaceAllStringFunc(s, func(m string) string {
		name, fallback, hasFallback := strings.Cut(m[2:len(m)-1], ":-")
		v, ok := os.LookupEnv(name)
		switch {
		case ok && (v != "" || !hasFallback):
			return v
		case hasFallback:
			return fallback
		default:
			missing = append(missing, name)
			return m
		}
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrUnsetVariable, strings.Join(missing, ", "))
	}
	return out, nil
}
