// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

// Package main is the entry point for the Companydesk server.
//
// Companydesk sits in front of an ERP company-directory browse API. It fetches
// the full company list for a set of upstream parameters once, caches it for
// CACHE_TTL and answers search, filter, sort and pagination requests from
// memory.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config.yaml and environment (Koanf v2)
//  2. Logging: zerolog, with an slog bridge for the supervisor
//  3. Upstream: HTTP client behind a token-bucket throttle and circuit breaker
//  4. Cache and query pipeline: TTL dataset cache, locale-aware collation
//  5. HTTP: Chi router with CORS, rate limiting and Prometheus metrics
//  6. Supervisor: suture tree running the cache janitor and the HTTP server
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor context. The HTTP server stops
// accepting connections and drains in-flight requests for SHUTDOWN_TIMEOUT.
//
// # Example Usage
//
//	export UPSTREAM_URL=https://erp.example.com/pwa6/api/company/ef/linq/browse/all
//	export CACHE_TTL=5m
//	export COLLATION_LOCALE=ru
//	./companydesk
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/text/language"

	"github.com/tomtom215/companydesk/internal/api"
	"github.com/tomtom215/companydesk/internal/browse"
	"github.com/tomtom215/companydesk/internal/cache"
	"github.com/tomtom215/companydesk/internal/config"
	"github.com/tomtom215/companydesk/internal/logging"
	"github.com/tomtom215/companydesk/internal/metrics"
	"github.com/tomtom215/companydesk/internal/query"
	"github.com/tomtom215/companydesk/internal/supervisor"
	"github.com/tomtom215/companydesk/internal/supervisor/services"
	"github.com/tomtom215/companydesk/internal/upstream"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("upstream_url", cfg.Upstream.URL).
		Dur("cache_ttl", cfg.Cache.TTL).
		Str("collation", cfg.API.CollationLocale).
		Msg("Starting Companydesk")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS_ORIGINS is * in production; restrict it to the frontend origins")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Inbound rate limiting disabled (DISABLE_RATE_LIMIT=true)")
	}

	// Validated in config.Validate.
	collation := language.MustParse(cfg.API.CollationLocale)

	upstreamClient := upstream.NewCircuitBreakerClient(&cfg.Upstream)
	datasetCache := cache.New(cfg.Cache.TTL, cache.WithName("companies"))
	pipeline := query.New(query.Options{
		DefaultPageSize: cfg.API.DefaultPageSize,
		MaxPageSize:     cfg.API.MaxPageSize,
		Collation:       collation,
	})
	browseService := browse.NewService(datasetCache, upstreamClient, pipeline, browse.Options{
		TTL:            cfg.Cache.TTL,
		DedupeInflight: cfg.Cache.DedupeInflight,
	})

	handler := api.NewHandler(browseService, upstreamClient)
	router := api.NewRouter(handler, &cfg.Security)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Upstream fetches on a cache miss count against the write deadline.
		WriteTimeout: cfg.Server.Timeout + cfg.Upstream.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddCacheService(services.NewCacheJanitorService(
		services.SweepFunc(browseService.CleanupCache), cfg.Cache.CleanupInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}
	stop()

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Companydesk stopped")
	if len(unstopped) > 0 {
		os.Exit(1)
	}
}
