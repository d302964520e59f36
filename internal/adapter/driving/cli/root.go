// Package cli implements the tprmctl command tree on top of the AuditBoard
// gateway.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/tprmkit/internal/adapter/driven/auditboard"
	"github.com/ericfisherdev/tprmkit/internal/clock"
	"github.com/ericfisherdev/tprmkit/internal/config"
)

// Options wires the command tree to its environment. Zero values select the
// process defaults.
type Options struct {
	Out        io.Writer
	Err        io.Writer
	LoadConfig func() (*config.Config, error)
	Clock      clock.Clock
	HTTPClient *http.Client
}

type app struct {
	opts        Options
	overrides   config.Overrides
	verbose     bool
	metricsFile string
	printer     *printer
}

// NewRootCommand builds the tprmctl root command with every action attached.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.Clock == nil {
		opts.Clock = clock.System()
	}

	a := &app{opts: opts, printer: newPrinter(opts.Out)}

	cmd := &cobra.Command{
		Use:           "tprmctl",
		Short:         "Operate on AuditBoard OpsAudit records",
		Long:          "tprmctl lists, clones, cancels, deletes, merges, and exports AuditBoard OpsAudit records.\nCredentials come from flags or AUDITBOARD_* environment variables; flags win.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(opts.Out)
	cmd.SetErr(opts.Err)

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.overrides.Tenant, "tenant", "", "AuditBoard tenant subdomain (AUDITBOARD_TENANT)")
	pf.StringVar(&a.overrides.APIKey, "api-key", "", "Service API key (AUDITBOARD_API_KEY)")
	pf.StringVar(&a.overrides.Email, "email", "", "Service account email (AUDITBOARD_EMAIL)")
	pf.StringVar(&a.overrides.Password, "password", "", "Service account password (AUDITBOARD_PASSWORD)")
	pf.StringVar(&a.overrides.BaseURL, "base-url", "", "Override the tenant origin, e.g. for a sandbox (AUDITBOARD_BASE_URL)")
	pf.Float64Var(&a.overrides.RateLimit, "rate-limit", 0, "Maximum requests per second (AUDITBOARD_RATE_LIMIT, default 20)")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "Write gateway metrics in Prometheus text format to this file on exit")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Log every request at debug level")

	cmd.AddCommand(
		a.newListCommand(),
		a.newGetCommand(),
		a.newCloneCommand(),
		a.newCancelCommand(),
		a.newDeleteCommand(),
		a.newMergeCommand(),
		a.newExportCommand(),
		a.newNotificationsCommand(),
	)
	return cmd
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.opts.Err, &slog.HandlerOptions{Level: level}))
}

// session is one command invocation's gateway plus the configuration it was
// built from.
type session struct {
	client *auditboard.Client
	cfg    *config.Config
	logger *slog.Logger
}

// withSession resolves configuration, constructs the gateway, runs fn, and
// writes the metrics file when one was requested.
func (a *app) withSession(ctx context.Context, fn func(ctx context.Context, s *session) error) error {
	cfg, err := a.opts.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Apply(a.overrides)

	logger := a.logger()

	hc := a.opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	gwOpts := []auditboard.Option{
		auditboard.WithRateLimit(cfg.RateLimit),
		auditboard.WithHTTPClient(hc),
		auditboard.WithClock(a.opts.Clock),
		auditboard.WithLogger(logger),
	}
	if cfg.BaseURL != "" {
		gwOpts = append(gwOpts, auditboard.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxRateLimitRetries >= 0 {
		policy := auditboard.DefaultRateLimitPolicy()
		policy.MaxRetries = cfg.MaxRateLimitRetries
		gwOpts = append(gwOpts, auditboard.WithRateLimitPolicy(policy))
	}

	var reg *prometheus.Registry
	if a.metricsFile != "" {
		reg = prometheus.NewRegistry()
		gwOpts = append(gwOpts, auditboard.WithMetrics(reg))
	}

	client, err := auditboard.NewClient(cfg.Credentials(), gwOpts...)
	if err != nil {
		return fmt.Errorf("create gateway: %w", err)
	}

	runErr := fn(ctx, &session{client: client, cfg: cfg, logger: logger})

	if reg != nil {
		if err := prometheus.WriteToTextfile(a.metricsFile, reg); err != nil {
			return errors.Join(runErr, fmt.Errorf("write metrics file: %w", err))
		}
	}
	return runErr
}
