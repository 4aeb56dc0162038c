// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package api

import (
	"context"
	"time"

	"github.com/tomtom215/companydesk/internal/browse"
	"github.com/tomtom215/companydesk/internal/models"
	"github.com/tomtom215/companydesk/internal/query"
)

// BrowseService is the part of *browse.Service the handlers depend on.
type BrowseService interface {
	Browse(ctx context.Context, base map[string]interface{}, params query.Params) (*browse.Outcome, error)
	Export(ctx context.Context, base map[string]interface{}, params query.Params) (*browse.Outcome, error)
	CacheStats() models.CacheStatsBody
	ClearCache() int
}

// BreakerStateReporter exposes the upstream circuit breaker state
// ("closed", "half-open" or "open") for readiness checks.
type BreakerStateReporter interface {
	State() string
	Name() string
}

// Handler serves the company browsing API.
type Handler struct {
	service   BrowseService
	breaker   BreakerStateReporter
	startTime time.Time
	now       func() time.Time
}

// NewHandler creates a Handler. breaker may be nil, in which case readiness
// only reports liveness.
//
// Example:
//
//	svc := browse.NewService(c, cbClient, pipeline, opts)
//	handler := api.NewHandler(svc, cbClient)
//	router := api.NewRouter(handler, &cfg.Security)
//	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
func NewHandler(service BrowseService, breaker BreakerStateReporter) *Handler {
	return &Handler{
		service:   service,
		breaker:   breaker,
		startTime: time.Now(),
		now:       time.Now,
	}
}
