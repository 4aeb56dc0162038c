// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

/*
Package services provides suture.Service wrappers for Companydesk components.

Each wrapper turns a component's lifecycle into suture's context-aware
Serve(ctx) error and names itself through fmt.Stringer for supervisor logs.

# Available Services

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine;
cancellation triggers Shutdown with a bounded deadline. A listener failure
is returned so the supervisor restarts the server with backoff.

CacheJanitorService sweeps expired datasets from the cache on a fixed
interval (CACHE_CLEANUP_INTERVAL) and counts sweeps in
cache_janitor_sweeps_total.
*/
package services
