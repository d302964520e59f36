package auditboard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds optional Prometheus collectors. A nil *metrics is valid and
// records nothing.
type metrics struct {
	requests     *prometheus.CounterVec
	retries      *prometheus.CounterVec
	throttleWait prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auditboard_requests_total",
			Help: "API round trips by HTTP method and response status code.",
		}, []string{"method", "code"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auditboard_retries_total",
			Help: "Transparent retries by reason (unauthorized, rate_limited).",
		}, []string{"reason"}),
		throttleWait: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auditboard_throttle_wait_seconds_total",
			Help: "Total time spent waiting on the client-side request throttle.",
		}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.retries, m.throttleWait} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register auditboard metrics: %w", err)
		}
	}
	return m, nil
}

func (m *metrics) observeRequest(method string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *metrics) observeRetry(reason string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(reason).Inc()
}

func (m *metrics) observeThrottle(wait time.Duration) {
	if m == nil {
		return
	}
	m.throttleWait.Add(wait.Seconds())
}
