// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package services

import (
	"context"
	"time"

	"github.com/tomtom215/companydesk/internal/logging"
	"github.com/tomtom215/companydesk/internal/metrics"
)

// CacheSweeper removes expired cache entries and reports how many it removed.
//
// Satisfied by *browse.Service (CleanupCache) via SweepFunc, and by
// *cache.Cache (Cleanup).
type CacheSweeper interface {
	Cleanup() int
}

// SweepFunc adapts a function to CacheSweeper.
type SweepFunc func() int

// Cleanup calls f.
func (f SweepFunc) Cleanup() int { return f() }

// CacheJanitorService periodically sweeps expired datasets so that a cache
// nobody reads does not hold stale upstream responses indefinitely.
//
//	janitor := services.NewCacheJanitorService(services.SweepFunc(svc.CleanupCache), cfg.Cache.CleanupInterval)
//	tree.AddCacheService(janitor)
type CacheJanitorService struct {
	sweeper  CacheSweeper
	interval time.Duration
	name     string
}

// NewCacheJanitorService creates a janitor that sweeps every interval.
// A non-positive interval becomes one minute.
func NewCacheJanitorService(sweeper CacheSweeper, interval time.Duration) *CacheJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitorService{
		sweeper:  sweeper,
		interval: interval,
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service. It sweeps on every tick until ctx is
// canceled and then returns ctx.Err().
func (j *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *CacheJanitorService) sweep() {
	removed := j.sweeper.Cleanup()
	metrics.CacheJanitorSweeps.Inc()
	if removed > 0 {
		logging.Debug().Int("removed", removed).Msg("Swept expired cache entries")
	}
}

// String implements fmt.Stringer. Suture uses it in log messages.
func (j *CacheJanitorService) String() string {
	return j.name
}
