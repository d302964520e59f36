// Package auditboard implements the AuditClient port over the AuditBoard REST
// API: token authentication, request throttling, and 401/429 retry handling.
package auditboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ericfisherdev/tprmkit/internal/clock"
	"github.com/ericfisherdev/tprmkit/internal/domain/model"
	"github.com/ericfisherdev/tprmkit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AuditClient = (*Client)(nil)

const (
	// DefaultRateLimit is the requests-per-second ceiling used when none is configured.
	DefaultRateLimit = 20

	defaultUserAgent = "tprmkit"
	apiPath          = "/api/v1"
	tokenPath        = "/api/account/serviceToken"
)

// tenantLabel matches a single DNS label. The tenant becomes the leftmost
// label of the API host, so anything else could redirect credentials.
var tenantLabel = regexp.MustCompile(`(?i)^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Client is the authenticated request gateway. It owns the credential set,
// the cached bearer token, and the throttle state.
//
// A Client assumes one logical caller at a time. Its internal state is
// mutex-protected, but concurrent callers get no ordering or fairness
// guarantee from the throttle.
type Client struct {
	creds     model.Credentials
	apiRoot   string
	tokenURL  string
	http      *http.Client
	clock     clock.Clock
	logger    *slog.Logger
	userAgent string
	metrics   *metrics

	unauthorized RetryPolicy
	rateLimit    RetryPolicy

	mu           sync.Mutex
	token        string
	interval     time.Duration
	lastDispatch time.Time
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	rateLimit    float64
	baseURL      string
	httpClient   *http.Client
	clock        clock.Clock
	logger       *slog.Logger
	userAgent    string
	registerer   prometheus.Registerer
	unauthorized *RetryPolicy
	rateLimited  *RetryPolicy
}

// WithRateLimit sets the requests-per-second ceiling. Values <= 0 are rejected
// by NewClient.
func WithRateLimit(perSecond float64) Option {
	return func(o *clientOptions) { o.rateLimit = perSecond }
}

// WithBaseURL replaces the tenant origin ("https://{tenant}.auditboard.com")
// for both the API root and the token endpoint. Used for sandbox tenants and tests.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) { o.baseURL = baseURL }
}

// WithHTTPClient sets the underlying http.Client. The client is copied; its
// transport is wrapped for request logging.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithClock sets the clock used for throttling and backoff sleeps.
func WithClock(c clock.Clock) Option {
	return func(o *clientOptions) { o.clock = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// WithMetrics registers request, retry, and throttle metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *clientOptions) { o.registerer = reg }
}

// WithUnauthorizedPolicy replaces the retry policy applied to 401 responses.
func WithUnauthorizedPolicy(p RetryPolicy) Option {
	return func(o *clientOptions) { o.unauthorized = &p }
}

// WithRateLimitPolicy replaces the retry policy applied to 429 responses.
func WithRateLimitPolicy(p RetryPolicy) Option {
	return func(o *clientOptions) { o.rateLimited = &p }
}

// NewClient creates a Client for the given credentials. It returns a
// *driven.ConfigurationError when any credential field is empty, the tenant
// is not a single DNS label, or the options are invalid. No network call is made.
func NewClient(creds model.Credentials, opts ...Option) (*Client, error) {
	if missing := creds.Missing(); len(missing) > 0 {
		return nil, &driven.ConfigurationError{Missing: missing}
	}
	if !tenantLabel.MatchString(creds.Tenant) {
		return nil, &driven.ConfigurationError{Reason: fmt.Sprintf("invalid tenant %q: must be a single DNS label", creds.Tenant)}
	}

	o := clientOptions{
		rateLimit: DefaultRateLimit,
		clock:     clock.System(),
		logger:    slog.Default(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.rateLimit <= 0 {
		return nil, &driven.ConfigurationError{Reason: fmt.Sprintf("rate limit must be positive, got %v", o.rateLimit)}
	}

	origin := fmt.Sprintf("https://%s.auditboard.com", creds.Tenant)
	if o.baseURL != "" {
		u, err := url.Parse(o.baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, &driven.ConfigurationError{Reason: fmt.Sprintf("invalid base URL %q", o.baseURL)}
		}
		origin = strings.TrimRight(o.baseURL, "/")
	}

	hc := &http.Client{Timeout: 30 * time.Second}
	if o.httpClient != nil {
		copied := *o.httpClient
		hc = &copied
	}
	hc.Transport = newLoggingTransport(hc.Transport, o.logger)

	unauthorized := DefaultUnauthorizedPolicy()
	if o.unauthorized != nil {
		unauthorized = *o.unauthorized
	}
	rateLimited := DefaultRateLimitPolicy()
	if o.rateLimited != nil {
		rateLimited = *o.rateLimited
	}

	m, err := newMetrics(o.registerer)
	if err != nil {
		return nil, err
	}

	return &Client{
		creds:        creds,
		apiRoot:      origin + apiPath,
		tokenURL:     origin + tokenPath,
		http:         hc,
		clock:        o.clock,
		logger:       o.logger,
		userAgent:    o.userAgent,
		metrics:      m,
		unauthorized: unauthorized,
		rateLimit:    rateLimited,
		interval:     time.Duration(float64(time.Second) / o.rateLimit),
	}, nil
}

// tokenRequest is the token-exchange request body.
type tokenRequest struct {
	APIKey   string `json:"api_key"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the token-exchange response body.
type tokenResponse struct {
	Token string `json:"token"`
}

// Authenticate exchanges the credential set for a bearer token, caches it as
// the current token, and returns it. On failure the cached token is cleared
// and a *driven.AuthenticationError is returned.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	c.setToken("")

	payload, err := json.Marshal(tokenRequest{
		APIKey:   c.creds.APIKey,
		Email:    c.creds.Email,
		Password: c.creds.Password,
	})
	if err != nil {
		return "", fmt.Errorf("encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	body, err := readBody(resp)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &driven.AuthenticationError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", &driven.AuthenticationError{Reason: fmt.Sprintf("parse token response: %v", err)}
	}
	if tr.Token == "" {
		return "", &driven.AuthenticationError{Reason: "no token returned from authentication"}
	}

	c.setToken(tr.Token)
	c.logger.Debug("auditboard authenticated", "tenant", c.creds.Tenant)
	return tr.Token, nil
}

// Token returns the current bearer token, authenticating first if no token
// is cached.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	tok := c.token
	c.mu.Unlock()

	if tok != "" {
		return tok, nil
	}
	return c.Authenticate(ctx)
}

func (c *Client) setToken(tok string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = tok
}

// Do dispatches one logical API call and returns the decoded JSON object.
// path is relative to the API root. query and body are optional; body is
// JSON-encoded when non-nil.
//
// A 401 is retried after re-authenticating and a 429 after the Retry-After
// delay, each under its RetryPolicy. Any other status >= 400, or a retry
// status once its policy is exhausted, returns a *driven.APIError. An empty
// response body yields an empty Payload.
func (c *Client) Do(ctx context.Context, method, path string, query model.Query, body any) (model.Payload, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		payload = encoded
	}

	target := c.apiRoot + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		values := url.Values{}
		for k, v := range query {
			values.Set(k, v)
		}
		target += "?" + values.Encode()
	}

	requestID := uuid.NewString()
	var unauthorizedRetries, rateLimitRetries int

	for {
		status, header, respBody, err := c.send(ctx, method, target, payload, requestID)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
		c.metrics.observeRequest(method, status)

		switch {
		case status == http.StatusUnauthorized && c.unauthorized.allows(unauthorizedRetries):
			unauthorizedRetries++
			c.metrics.observeRetry("unauthorized")
			c.logger.Warn("auditboard token rejected, re-authenticating",
				"method", method,
				"path", path,
				"request_id", requestID,
				"attempt", unauthorizedRetries,
			)
			if _, err := c.Authenticate(ctx); err != nil {
				return nil, err
			}
			if err := c.clock.Sleep(ctx, c.unauthorized.delay(header, unauthorizedRetries, c.clock.Now())); err != nil {
				return nil, err
			}
			continue

		case status == http.StatusTooManyRequests && c.rateLimit.allows(rateLimitRetries):
			rateLimitRetries++
			c.metrics.observeRetry("rate_limited")
			wait := c.rateLimit.delay(header, rateLimitRetries, c.clock.Now())
			c.logger.Warn("auditboard rate limited, backing off",
				"method", method,
				"path", path,
				"request_id", requestID,
				"retry_after", wait,
				"attempt", rateLimitRetries,
			)
			if err := c.clock.Sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue

		case status >= http.StatusBadRequest:
			return nil, &driven.APIError{
				StatusCode: status,
				Body:       string(respBody),
				Method:     method,
				Path:       path,
			}
		}

		result, err := decodePayload(respBody)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
		return result, nil
	}
}

// send performs one throttled, authenticated HTTP round trip and returns
// the status, headers, and fully read body.
func (c *Client) send(ctx context.Context, method, target string, payload []byte, requestID string) (int, http.Header, []byte, error) {
	if err := c.throttle(ctx); err != nil {
		return 0, nil, nil, err
	}

	tok, err := c.Token(ctx)
	if err != nil {
		return 0, nil, nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}

	body, err := readBody(resp)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, resp.Header, body, nil
}

// readBody reads and closes the response body.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// decodePayload decodes a JSON object body. Numbers are kept as json.Number
// so identifiers round-trip exactly.
func decodePayload(body []byte) (model.Payload, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return model.Payload{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var out model.Payload
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out == nil {
		return model.Payload{}, nil
	}
	return out, nil
}
