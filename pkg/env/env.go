// Package env is a thin lookup over the process environment for the few
// callers that run before the config loader, such as the logger.
package env

import "os"

// Get reads key from the environment, returning fallback when the
// variable is unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
