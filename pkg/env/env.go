package env

import (
	"os"
	"strings"
)

// Get reads an environment variable, falling back when it is unset or
// blank. Whitespace-only values count as unset.
func Get(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
