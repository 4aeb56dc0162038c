// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package browse

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/companydesk/internal/cache"
	"github.com/tomtom215/companydesk/internal/logging"
	"github.com/tomtom215/companydesk/internal/metrics"
	"github.com/tomtom215/companydesk/internal/models"
	"github.com/tomtom215/companydesk/internal/query"
	"github.com/tomtom215/companydesk/internal/upstream"
)

// Options configures a Service.
type Options struct {
	// TTL is the lifetime of a fetched dataset. Non-positive uses the
	// cache default.
	TTL time.Duration

	// DedupeInflight makes concurrent misses for one key share a single
	// upstream fetch.
	DedupeInflight bool
}

// Outcome is the result of one browse or export call.
type Outcome struct {
	Dataset   *models.Dataset
	Result    query.Result
	CacheHit  bool
	Key       string
	ExpiresAt time.Time
}

// Service answers browse requests from the dataset cache, fetching from the
// upstream on a miss.
type Service struct {
	cache    cache.Cacher
	fetcher  upstream.Fetcher
	pipeline *query.Pipeline
	opts     Options
	group    singleflight.Group
}

// NewService wires a cache, an upstream fetcher and a query pipeline.
func NewService(c cache.Cacher, fetcher upstream.Fetcher, pipeline *query.Pipeline, opts Options) *Service {
	return &Service{
		cache:    c,
		fetcher:  fetcher,
		pipeline: pipeline,
		opts:     opts,
	}
}

// Browse returns one page of companies for the base parameters and view.
//
// base must already have the view parameters removed (see
// cache.StripTransient); it is forwarded upstream and determines the cache
// key. Upstream errors are returned unchanged and are never cached.
func (s *Service) Browse(ctx context.Context, base map[string]interface{}, params query.Params) (*Outcome, error) {
	out, err := s.load(ctx, base)
	if err != nil {
		return nil, err
	}
	out.Result = s.pipeline.Run(out.Dataset, params)
	return out, nil
}

// Export returns every company matching the view, sorted but not paginated.
func (s *Service) Export(ctx context.Context, base map[string]interface{}, params query.Params) (*Outcome, error) {
	out, err := s.load(ctx, base)
	if err != nil {
		return nil, err
	}
	out.Result = s.pipeline.RunAll(out.Dataset, params)
	return out, nil
}

// load resolves the dataset for base from the cache or the upstream.
func (s *Service) load(ctx context.Context, base map[string]interface{}) (*Outcome, error) {
	key, err := cache.BuildKey(cache.CompaniesPrefix, base)
	if err != nil {
		return nil, fmt.Errorf("failed to build cache key: %w", err)
	}

	if entry, ok := s.cache.GetEntry(key); ok {
		if ds, ok := entry.Data.(*models.Dataset); ok {
			logging.CtxDebug(ctx).Int("companies", ds.Len()).Msg("Serving companies from cache")
			return &Outcome{Dataset: ds, CacheHit: true, Key: key, ExpiresAt: entry.ExpiresAt}, nil
		}
		s.cache.Delete(key)
	}

	entry, err := s.fetch(ctx, key, base)
	if err != nil {
		return nil, err
	}
	return &Outcome{Dataset: entry.Data.(*models.Dataset), Key: key, ExpiresAt: entry.ExpiresAt}, nil
}

// fetch calls the upstream and stores the dataset. With deduplication on,
// callers missing the same key at the same time wait for one fetch. Each
// caller stops waiting when its own ctx is done; the shared fetch keeps
// running and still populates the cache.
func (s *Service) fetch(ctx context.Context, key string, base map[string]interface{}) (cache.Entry, error) {
	if !s.opts.DedupeInflight {
		return s.fetchAndStore(ctx, key, base)
	}

	leader := false
	ch := s.group.DoChan(key, func() (interface{}, error) {
		leader = true
		// Followers depend on this fetch, so it must outlive the leader's request.
		return s.fetchAndStore(context.WithoutCancel(ctx), key, base)
	})

	select {
	case res := <-ch:
		if res.Shared && !leader {
			metrics.UpstreamSharedFetches.Inc()
			logging.CtxDebug(ctx).Msg("Joined in-flight upstream fetch")
		}
		if res.Err != nil {
			return cache.Entry{}, res.Err
		}
		return res.Val.(cache.Entry), nil

	case <-ctx.Done():
		logging.CtxDebug(ctx).Msg("Stopped waiting for upstream fetch")
		return cache.Entry{}, ctx.Err()
	}
}

func (s *Service) fetchAndStore(ctx context.Context, key string, base map[string]interface{}) (cache.Entry, error) {
	start := time.Now()
	ds, err := s.fetcher.FetchCompanies(ctx, base)
	if err != nil {
		logging.CtxErr(ctx, err).Dur("duration", time.Since(start)).Msg("Upstream fetch failed")
		return cache.Entry{}, err
	}

	entry := s.cache.SetWithTTL(key, ds, s.opts.TTL)
	logging.CtxInfo(ctx).
		Int("companies", ds.Len()).
		Dur("duration", time.Since(start)).
		Time("expires_at", entry.ExpiresAt).
		Msg("Cached companies from upstream")
	return entry, nil
}

// CacheStats snapshots the cache, then sweeps expired entries. The snapshot
// is taken first so the expired count reflects what the sweep removed.
func (s *Service) CacheStats() models.CacheStatsBody {
	stats := s.cache.Stats()
	cleaned := s.cache.Cleanup()
	return models.CacheStatsBody{
		Total:            stats.Total,
		Active:           stats.Active,
		Expired:          stats.Expired,
		CleanedUpExpired: cleaned,
	}
}

// CleanupCache removes expired entries and returns how many were removed.
func (s *Service) CleanupCache() int {
	return s.cache.Cleanup()
}

// ClearCache removes every cached dataset and returns how many were held.
func (s *Service) ClearCache() int {
	n := s.cache.Clear()
	logging.Info().Int("removed", n).Msg("Cache cleared")
	return n
}
