package driven

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an incomplete or invalid gateway configuration.
// It is raised at construction time and is never retried.
type ConfigurationError struct {
	Missing []string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required credentials: %s", strings.Join(e.Missing, ", "))
	}
	return "invalid configuration: " + e.Reason
}

// AuthenticationError reports a rejected or malformed token exchange.
// StatusCode is zero when the exchange succeeded but carried no token.
type AuthenticationError struct {
	StatusCode int
	Body       string
	Reason     string
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed: %d - %s", e.StatusCode, e.Body)
	}
	return "authentication failed: " + e.Reason
}

// APIError reports a remote response with status >= 400 that was not
// transparently retried.
type APIError struct {
	StatusCode int
	Body       string
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s %s: %d - %s", e.Method, e.Path, e.StatusCode, e.Body)
}
