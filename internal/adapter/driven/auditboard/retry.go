package auditboard

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Unbounded, as RetryPolicy.MaxRetries, retries without limit.
const Unbounded = -1

// DefaultRetryAfter is the 429 backoff used when the response carries no
// usable Retry-After header.
const DefaultRetryAfter = 5 * time.Second

// RetryPolicy controls how many times a response status is transparently
// retried and how long to wait before each retry.
type RetryPolicy struct {
	// MaxRetries is the number of retries allowed per logical call. Zero
	// disables retrying; Unbounded (or any negative value) never gives up.
	MaxRetries int
	// Backoff returns the wait before retry number attempt (1-based), given
	// the response headers and the current time. Nil means no wait.
	Backoff func(header http.Header, attempt int, now time.Time) time.Duration
}

// DefaultUnauthorizedPolicy re-authenticates and retries a 401 exactly once.
func DefaultUnauthorizedPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 1}
}

// DefaultRateLimitPolicy retries 429 responses without limit, waiting for the
// Retry-After duration each time. A persistently rate-limiting remote causes
// unbounded retries; set MaxRetries to bound it.
func DefaultRateLimitPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: Unbounded, Backoff: RetryAfterBackoff(DefaultRetryAfter)}
}

func (p RetryPolicy) allows(retriesSoFar int) bool {
	return p.MaxRetries < 0 || retriesSoFar < p.MaxRetries
}

func (p RetryPolicy) delay(header http.Header, attempt int, now time.Time) time.Duration {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff(header, attempt, now)
}

// RetryAfterBackoff returns a Backoff that honors the Retry-After header,
// given either as delay-seconds or as an HTTP-date, and falls back to
// fallback when the header is absent or unparseable.
func RetryAfterBackoff(fallback time.Duration) func(http.Header, int, time.Time) time.Duration {
	return func(header http.Header, _ int, now time.Time) time.Duration {
		if d, ok := parseRetryAfter(header.Get("Retry-After"), now); ok {
			return d
		}
		return fallback
	}
}

func parseRetryAfter(v string, now time.Time) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}

	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}

	if at, err := http.ParseTime(v); err == nil {
		d := at.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}

	return 0, false
}
