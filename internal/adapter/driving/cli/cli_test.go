package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/tprmkit/internal/adapter/driving/cli"
	"github.com/ericfisherdev/tprmkit/internal/clock"
	"github.com/ericfisherdev/tprmkit/internal/config"
	"github.com/ericfisherdev/tprmkit/internal/domain/port/driven"
)

// fakeTenant is an in-process AuditBoard tenant that records API calls.
type fakeTenant struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
	handlers map[string]http.HandlerFunc
}

func newFakeTenant(t *testing.T) (*fakeTenant, *httptest.Server) {
	t.Helper()
	ft := &fakeTenant{handlers: map[string]http.HandlerFunc{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/account/serviceToken", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"token":"tok"}`)
	})
	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		key := r.Method + " " + r.URL.Path

		ft.mu.Lock()
		ft.requests = append(ft.requests, key)
		ft.bodies = append(ft.bodies, string(body))
		h, ok := ft.handlers[key]
		ft.mu.Unlock()

		if !ok {
			_, _ = io.WriteString(w, `{}`)
			return
		}
		h(w, r)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return ft, server
}

func (ft *fakeTenant) handle(key, body string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.handlers[key] = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, body)
	}
}

func (ft *fakeTenant) calls() []string {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return append([]string(nil), ft.requests...)
}

func (ft *fakeTenant) lastBody() string {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if len(ft.bodies) == 0 {
		return ""
	}
	return ft.bodies[len(ft.bodies)-1]
}

func tenantConfig(server *httptest.Server) *config.Config {
	return &config.Config{
		Tenant:              "acme",
		APIKey:              "key",
		Email:               "ops@acme.test",
		Password:            "secret",
		BaseURL:             server.URL,
		RateLimit:           config.DefaultRateLimit,
		ExportTimeout:       config.DefaultExportTimeout,
		MaxRateLimitRetries: config.UnboundedRetries,
		HTTPTimeout:         5 * time.Second,
	}
}

type result struct {
	out    string
	errOut string
	err    error
}

func execute(t *testing.T, server *httptest.Server, cfg *config.Config, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer

	root := cli.NewRootCommand(cli.Options{
		Out:        &out,
		Err:        &errOut,
		LoadConfig: func() (*config.Config, error) { return cfg, nil },
		Clock:      clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		HTTPClient: server.Client(),
	})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func TestList_PrintsSummary(t *testing.T) {
	ft, server := newFakeTenant(t)
	records := make([]map[string]any, 12)
	for i := range records {
		records[i] = map[string]any{"id": i + 1, "name": fmt.Sprintf("Vendor review %d", i+1)}
	}
	body, err := json.Marshal(map[string]any{"ops_audits": records})
	require.NoError(t, err)
	ft.handle("GET /api/v1/ops_audits", string(body))

	res := execute(t, server, tenantConfig(server), "list")

	require.NoError(t, res.err)
	lines := strings.Split(strings.TrimSpace(res.out), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "Found 12 OpsAudits", lines[0])
	assert.Equal(t, "  - 1: Vendor review 1", lines[1])
	assert.Equal(t, "  - 10: Vendor review 10", lines[10])
	assert.Equal(t, "  ... and 2 more", lines[11])
}

func TestGet_PrintsRecordJSON(t *testing.T) {
	ft, server := newFakeTenant(t)
	ft.handle("GET /api/v1/ops_audits/42", `{"ops_audit":{"id":42,"name":"Acme SOC2"}}`)

	res := execute(t, server, tenantConfig(server), "get", "--id", "42")

	require.NoError(t, res.err)
	assert.JSONEq(t, `{"ops_audit":{"id":42,"name":"Acme SOC2"}}`, res.out)
	assert.Equal(t, []string{"GET /api/v1/ops_audits/42"}, ft.calls())
}

func TestRecordCommands_RequireID(t *testing.T) {
	for _, action := range []string{"get", "clone", "cancel", "delete", "export", "merge"} {
		t.Run(action, func(t *testing.T) {
			ft, server := newFakeTenant(t)

			res := execute(t, server, tenantConfig(server), action)

			require.Error(t, res.err)
			assert.Contains(t, res.err.Error(), `"id"`)
			assert.Empty(t, ft.calls())
		})
	}
}

func TestClone_SendsNameAndFields(t *testing.T) {
	ft, server := newFakeTenant(t)
	ft.handle("POST /api/v1/ops_audits/5/clone", `{"ops_audit":{"id":99,"name":"Q3 review"}}`)

	res := execute(t, server, tenantConfig(server),
		"clone", "--id", "5", "--name", "Q3 review", "--field", "due_date=2026-09-30")

	require.NoError(t, res.err)
	assert.JSONEq(t, `{"name":"Q3 review","due_date":"2026-09-30"}`, ft.lastBody())
	assert.True(t, strings.HasPrefix(res.out, "Cloned OpsAudit 5\n"))
	assert.Contains(t, res.out, `"id": 99`)
}

func TestCancelAndDelete(t *testing.T) {
	ft, server := newFakeTenant(t)

	res := execute(t, server, tenantConfig(server), "cancel", "--id", "7")
	require.NoError(t, res.err)
	assert.Equal(t, "Cancelled OpsAudit 7\n", res.out)

	res = execute(t, server, tenantConfig(server), "delete", "--id", "7")
	require.NoError(t, res.err)
	assert.Equal(t, "Deleted OpsAudit 7\n", res.out)

	assert.Equal(t, []string{"PUT /api/v1/ops_audits/7/cancel", "DELETE /api/v1/ops_audits/7"}, ft.calls())
}

func TestMerge(t *testing.T) {
	ft, server := newFakeTenant(t)

	res := execute(t, server, tenantConfig(server), "merge", "--id", "1", "--source", "2,3")

	require.NoError(t, res.err)
	assert.Equal(t, "Merged 2 OpsAudit(s) into 1\n", res.out)
	assert.JSONEq(t, `{"source_ops_audit_ids":["2","3"]}`, ft.lastBody())
}

func TestExport_NoWait(t *testing.T) {
	for _, flag := range []string{"--no-wait", "--wait=false"} {
		t.Run(flag, func(t *testing.T) {
			ft, server := newFakeTenant(t)

			res := execute(t, server, tenantConfig(server), "export", "--id", "8", flag)

			require.NoError(t, res.err)
			assert.Equal(t, "Export triggered for OpsAudit 8\n", res.out)
			assert.Equal(t, []string{"POST /api/v1/ops_audits/8/export_audit_forms"}, ft.calls())
		})
	}
}

func TestExport_WaitsByDefault(t *testing.T) {
	ft, server := newFakeTenant(t)
	ft.handle("GET /api/v1/notification_messages",
		`{"notification_messages":[{"id":1,"download_url":"https://files.acme.test/8.zip"}]}`)

	res := execute(t, server, tenantConfig(server), "export", "--id", "8")

	require.NoError(t, res.err)
	assert.Equal(t, "Export ready for OpsAudit 8\nDownload URL: https://files.acme.test/8.zip\n", res.out)
	assert.Equal(t, []string{
		"POST /api/v1/ops_audits/8/export_audit_forms",
		"GET /api/v1/notification_messages",
	}, ft.calls())
}

func TestExport_WaitFindsDownload(t *testing.T) {
	ft, server := newFakeTenant(t)
	ft.handle("GET /api/v1/notification_messages",
		`{"notification_messages":[{"id":1,"download_url":"https://files.acme.test/8.zip"}]}`)

	res := execute(t, server, tenantConfig(server), "export", "--id", "8", "--wait")

	require.NoError(t, res.err)
	assert.Equal(t, "Export ready for OpsAudit 8\nDownload URL: https://files.acme.test/8.zip\n", res.out)
}

func TestExport_WaitTimesOut(t *testing.T) {
	ft, server := newFakeTenant(t)
	ft.handle("GET /api/v1/notification_messages", `{"notification_messages":[]}`)

	res := execute(t, server, tenantConfig(server), "export", "--id", "8", "--wait", "--timeout", "4s")

	require.NoError(t, res.err)
	assert.Equal(t, "No download link for OpsAudit 8 after 4s\n", res.out)
}

func TestNotifications(t *testing.T) {
	ft, server := newFakeTenant(t)
	ft.handle("GET /api/v1/notification_messages",
		`{"notification_messages":[{"id":1,"message":"Export ready","download_url":"https://x/1.zip"},{"id":2,"message":"Assigned"}]}`)

	res := execute(t, server, tenantConfig(server), "notifications")

	require.NoError(t, res.err)
	assert.Equal(t, "Found 2 notifications\n  - 1: Export ready [https://x/1.zip]\n  - 2: Assigned\n", res.out)
}

func TestFlagsOverrideConfig(t *testing.T) {
	ft, server := newFakeTenant(t)
	cfg := &config.Config{RateLimit: config.DefaultRateLimit, MaxRateLimitRetries: config.UnboundedRetries}

	res := execute(t, server, cfg,
		"--tenant", "acme", "--api-key", "k", "--email", "e@acme.test", "--password", "p",
		"--base-url", server.URL, "cancel", "--id", "3")

	require.NoError(t, res.err)
	assert.Equal(t, []string{"PUT /api/v1/ops_audits/3/cancel"}, ft.calls())
}

func TestMissingCredentials(t *testing.T) {
	ft, server := newFakeTenant(t)
	cfg := &config.Config{Tenant: "acme", RateLimit: config.DefaultRateLimit}

	res := execute(t, server, cfg, "list")

	require.Error(t, res.err)
	var cfgErr *driven.ConfigurationError
	require.True(t, errors.As(res.err, &cfgErr))
	assert.Equal(t, []string{"api_key", "email", "password"}, cfgErr.Missing)
	assert.Empty(t, ft.calls())
}

func TestAPIErrorPropagates(t *testing.T) {
	ft, server := newFakeTenant(t)
	ft.mu.Lock()
	ft.handlers["GET /api/v1/ops_audits/9"] = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"not found"}`)
	}
	ft.mu.Unlock()

	res := execute(t, server, tenantConfig(server), "get", "--id", "9")

	require.Error(t, res.err)
	var apiErr *driven.APIError
	require.True(t, errors.As(res.err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Empty(t, res.out)
}

func TestMetricsFile(t *testing.T) {
	_, server := newFakeTenant(t)
	path := filepath.Join(t.TempDir(), "tprmctl.prom")

	res := execute(t, server, tenantConfig(server), "--metrics-file", path, "delete", "--id", "4")

	require.NoError(t, res.err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `auditboard_requests_total{code="200",method="DELETE"} 1`)
}

func TestVerboseLogsRequests(t *testing.T) {
	_, server := newFakeTenant(t)

	res := execute(t, server, tenantConfig(server), "--verbose", "delete", "--id", "4")

	require.NoError(t, res.err)
	assert.Contains(t, res.errOut, "level=DEBUG")
	assert.Contains(t, res.errOut, "/api/v1/ops_audits/4")
}
