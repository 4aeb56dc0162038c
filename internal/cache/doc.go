// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

/*
Package cache provides a thread-safe in-memory store with per-entry TTL and
the deterministic key builder used to address upstream datasets.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex)
  - Per-entry expiry, checked lazily on Get and eagerly by Cleanup
  - Point-in-time Stats (total, active, expired)
  - Lifetime hit/miss/eviction counters exported to Prometheus
  - An injectable clock for deterministic tests

The cache starts no goroutines. Periodic sweeping is performed by the
CacheJanitorService in internal/supervisor/services, which calls Cleanup on
a ticker under the process supervisor.

# Usage Example

	c := cache.New(5*time.Minute, cache.WithName("companies"))

	base := cache.StripTransient(requestParams)
	key, err := cache.BuildKey(cache.CompaniesPrefix, base)
	if err != nil {
	    return err
	}

	if entry, ok := c.GetEntry(key); ok {
	    ds := entry.Data.(*models.Dataset)
	    // serve from cache, entry.ExpiresAt feeds Cache-Control
	}

	ds, err := fetch(ctx, base)
	if err != nil {
	    return err // failures are never cached
	}
	entry := c.Set(key, ds)

# Expiry Semantics

An entry stored at time T with ttl D is valid while now <= T+D. A read after
that instant deletes the entry and reports a miss. Cleanup removes exactly
the entries past their expiry and returns how many it removed; Stats counts
them without removing anything, so Active + Expired == Total always holds.

# Cache Keys

BuildKey produces prefix + ":" + canonical JSON of the base parameters.
Object keys are sorted at every nesting level, so two parameter objects that
are deeply equal yield the same key whatever their insertion order. View
parameters (paging, sorting, search, filters) are listed in TransientParams
and must be stripped first with StripTransient.

Keys embed the upstream credentials carried in the base parameters. They are
returned to the caller in CacheInfo but must never be logged.

# Thread Safety

All methods are safe for concurrent use. Get takes a read lock and upgrades
to the write lock only to delete an expired entry, re-checking expiry so a
concurrent Set is never undone.
*/
package cache
