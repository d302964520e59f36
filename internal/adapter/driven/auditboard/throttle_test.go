package auditboard_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/tprmkit/internal/adapter/driven/auditboard"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})
}

func TestThrottle_ConsecutiveDispatchesAreSpaced(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		k    int
	}{
		{name: "default ceiling", rate: auditboard.DefaultRateLimit, k: 10},
		{name: "ten per second", rate: 10, k: 5},
		{name: "two per second", rate: 2, k: 4},
		{name: "single dispatch", rate: 1, k: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTenant(t, &tokenIssuer{tokens: []string{"tok"}}, okHandler())
			client, fc := newTestClient(t, server, auditboard.WithRateLimit(tt.rate))

			for range tt.k {
				_, err := client.Do(context.Background(), http.MethodGet, "/ops_audits", nil, nil)
				require.NoError(t, err)
			}

			minimum := time.Duration(float64(tt.k-1) / tt.rate * float64(time.Second))
			assert.GreaterOrEqual(t, fc.Now().Sub(epoch), minimum)
			assert.Len(t, fc.Sleeps(), tt.k-1)
		})
	}
}

func TestThrottle_FirstDispatchDoesNotWait(t *testing.T) {
	server := newTenant(t, &tokenIssuer{tokens: []string{"tok"}}, okHandler())
	client, fc := newTestClient(t, server)

	_, err := client.Do(context.Background(), http.MethodGet, "/ops_audits", nil, nil)

	require.NoError(t, err)
	assert.Empty(t, fc.Sleeps())
}

func TestThrottle_WaitsOnlyForRemainingInterval(t *testing.T) {
	server := newTenant(t, &tokenIssuer{tokens: []string{"tok"}}, okHandler())
	client, fc := newTestClient(t, server, auditboard.WithRateLimit(10))

	_, err := client.Do(context.Background(), http.MethodGet, "/ops_audits", nil, nil)
	require.NoError(t, err)

	fc.Advance(30 * time.Millisecond)
	_, err = client.Do(context.Background(), http.MethodGet, "/ops_audits", nil, nil)
	require.NoError(t, err)

	fc.Advance(time.Second)
	_, err = client.Do(context.Background(), http.MethodGet, "/ops_audits", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{70 * time.Millisecond}, fc.Sleeps())
}

func TestThrottle_AppliesToRetries(t *testing.T) {
	api := &statusSequence{
		statuses:   []int{http.StatusTooManyRequests},
		retryAfter: []string{"0"},
		body:       map[string]any{},
	}
	server := newTenant(t, &tokenIssuer{tokens: []string{"tok"}}, api)
	client, fc := newTestClient(t, server)

	_, err := client.Do(context.Background(), http.MethodGet, "/ops_audits", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{50 * time.Millisecond}, fc.Sleeps())
}

func TestThrottle_CanceledWaitReleasesSlot(t *testing.T) {
	server := newTenant(t, &tokenIssuer{tokens: []string{"tok"}}, okHandler())
	client, fc := newTestClient(t, server, auditboard.WithRateLimit(10))

	_, err := client.Do(context.Background(), http.MethodGet, "/ops_audits", nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Do(ctx, http.MethodGet, "/ops_audits", nil, nil)
	require.ErrorIs(t, err, context.Canceled)

	fc.Advance(100 * time.Millisecond)
	_, err = client.Do(context.Background(), http.MethodGet, "/ops_audits", nil, nil)
	require.NoError(t, err)

	assert.Empty(t, fc.Sleeps(), "the canceled call must not push back the next dispatch")
}
