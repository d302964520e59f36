package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/tprmkit/internal/adapter/driven/auditboard"
	"github.com/ericfisherdev/tprmkit/internal/config"
)

func main() {
	os.Exit(check())
}

// check exchanges the configured credentials for a token once and reports
// whether the tenant accepted them.
func check() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		return 1
	}

	opts := []auditboard.Option{
		auditboard.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
		auditboard.WithLogger(logger),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, auditboard.WithBaseURL(cfg.BaseURL))
	}

	client, err := auditboard.NewClient(cfg.Credentials(), opts...)
	if err != nil {
		logger.Error("create gateway", "error", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := client.Authenticate(ctx); err != nil {
		logger.Error("authenticate", "tenant", cfg.Tenant, "error", err)
		return 1
	}

	logger.Info("credentials accepted", "tenant", cfg.Tenant)
	return 0
}
