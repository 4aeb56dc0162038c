// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package cache

import "time"

// Cacher is the behaviour the browse service and the janitor need from a
// cache. *Cache implements it; tests may substitute their own.
type Cacher interface {
	// GetEntry returns the live entry for key, deleting it if expired.
	GetEntry(key string) (Entry, bool)

	// SetWithTTL stores value under key; a non-positive ttl uses the default.
	SetWithTTL(key string, value interface{}, ttl time.Duration) Entry

	// Delete removes key and reports whether it was present.
	Delete(key string) bool

	// Clear removes every entry and returns how many were held.
	Clear() int

	// Cleanup removes expired entries and returns how many were removed.
	Cleanup() int

	// Stats reports total, active and expired entry counts.
	Stats() Stats

	// TTL returns the default entry lifetime.
	TTL() time.Duration
}

// Compile-time interface check
var _ Cacher = (*Cache)(nil)
