// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

/*
Package api provides the HTTP layer for Companydesk.

Handlers decode and validate requests, delegate to the browse service and
translate results and errors into HTTP responses. The Chi router mounts every
company and cache route both at the root and under /api.

# Endpoints

	POST   /companies          browse: search, filter, sort and paginate
	GET    /companies          405 with Allow: POST, DELETE
	DELETE /companies          clear the dataset cache
	POST   /companies/export   CSV of every record matching the query
	GET    /companies/fields   searchable, sortable and filterable fields
	GET    /cache              cache statistics (expired entries swept first)
	DELETE /cache              clear the dataset cache
	GET    /health/live        liveness
	GET    /health/ready       readiness, 503 while the upstream breaker is open
	GET    /metrics            Prometheus exposition

# Response Shapes

The browse result and the cache endpoints are written unwrapped so existing
clients keep working. Everything else, including every error, uses the
APIResponse envelope:

	{
	  "success": false,
	  "error": {"code": "VALIDATION_ERROR", "message": "...", "details": [...]},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 0}
	}

# Diagnostic Headers

Browse responses carry X-Cache (HIT or MISS), X-Processing-Time,
X-Total-Before-Filter, X-Total-After-Filter and, when a search term was
given, X-Search-Time. Cache-Control max-age tracks the remaining lifetime of
the cached dataset.

# Middleware

Global: request ID with logging context, E2E debug logging, real IP, panic
recovery and CORS. Per route group: httprate per-IP limits, security headers,
Prometheus request metrics and gzip compression of large JSON bodies.
*/
package api
