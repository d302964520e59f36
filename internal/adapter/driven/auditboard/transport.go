package auditboard

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs each round trip with method, path, status, and duration.
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func newLoggingTransport(next http.RoundTripper, logger *slog.Logger) *loggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger}
}

// RoundTrip delegates to the wrapped transport and logs the outcome. The
// query string is never logged.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start).Round(time.Microsecond)

	if err != nil {
		t.logger.Debug("auditboard request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", req.Header.Get("X-Request-ID"),
			"duration", duration,
			"error", err,
		)
		return nil, err
	}

	t.logger.Debug("auditboard request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-ID"),
		"duration", duration,
	)
	return resp, nil
}
