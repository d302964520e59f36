package auditboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/tprmkit/internal/clock"
	"github.com/ericfisherdev/tprmkit/internal/domain/model"
)

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		header string
		want   time.Duration
		ok     bool
	}{
		{name: "empty", header: "", ok: false},
		{name: "seconds", header: "3", want: 3 * time.Second, ok: true},
		{name: "zero", header: "0", want: 0, ok: true},
		{name: "padded", header: " 12 ", want: 12 * time.Second, ok: true},
		{name: "negative", header: "-4", ok: false},
		{name: "garbage", header: "soon", ok: false},
		{name: "http date", header: now.Add(90 * time.Second).Format(http.TimeFormat), want: 90 * time.Second, ok: true},
		{name: "past http date", header: now.Add(-time.Minute).Format(http.TimeFormat), want: 0, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseRetryAfter(tt.header, now)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRetryAfterBackoff_FallsBack(t *testing.T) {
	backoff := RetryAfterBackoff(DefaultRetryAfter)

	assert.Equal(t, 5*time.Second, backoff(http.Header{}, 1, time.Now()))

	h := http.Header{}
	h.Set("Retry-After", "2")
	assert.Equal(t, 2*time.Second, backoff(h, 1, time.Now()))
}

func TestRetryPolicy_Allows(t *testing.T) {
	assert.True(t, DefaultUnauthorizedPolicy().allows(0))
	assert.False(t, DefaultUnauthorizedPolicy().allows(1))

	assert.True(t, DefaultRateLimitPolicy().allows(1_000_000))

	none := RetryPolicy{MaxRetries: 0}
	assert.False(t, none.allows(0))
	assert.Zero(t, none.delay(http.Header{}, 1, time.Now()))
}

func TestDecodePayload(t *testing.T) {
	p, err := decodePayload([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, model.Payload{}, p)

	p, err = decodePayload([]byte("null"))
	require.NoError(t, err)
	assert.Equal(t, model.Payload{}, p)

	p, err = decodePayload([]byte(`{"id": 12345678901234}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234"), p["id"])

	_, err = decodePayload([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestMetrics_CountRequestsAndRetries(t *testing.T) {
	var tokenCalls atomic.Int32
	var apiCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/account/serviceToken", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		_, _ = io.WriteString(w, `{"token":"tok"}`)
	})
	mux.HandleFunc("/api/v1/ops_audits", func(w http.ResponseWriter, r *http.Request) {
		switch apiCalls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusUnauthorized)
		case 2:
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			_, _ = io.WriteString(w, `{}`)
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	reg := prometheus.NewRegistry()
	c, err := NewClient(model.Credentials{Tenant: "t", APIKey: "k", Email: "e", Password: "p"},
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithClock(clock.NewFake(time.Unix(0, 0))),
		WithMetrics(reg),
	)
	require.NoError(t, err)

	_, err = c.ListRecords(context.Background(), "", nil)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.requests.WithLabelValues("GET", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.requests.WithLabelValues("GET", "429")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.requests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.retries.WithLabelValues("unauthorized")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.retries.WithLabelValues("rate_limited")))
	assert.Greater(t, testutil.ToFloat64(c.metrics.throttleWait), 0.0)
	assert.Equal(t, int32(2), tokenCalls.Load())
}

func TestMetrics_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	creds := model.Credentials{Tenant: "t", APIKey: "k", Email: "e", Password: "p"}

	_, err := NewClient(creds, WithMetrics(reg))
	require.NoError(t, err)

	_, err = NewClient(creds, WithMetrics(reg))
	assert.Error(t, err)
}
