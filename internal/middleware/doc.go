// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

/*
Package middleware provides HTTP middleware shared by the API routes.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight instrumentation,
    labelled by chi route pattern
  - Compression: gzip for JSON and text bodies of at least CompressMinSize bytes

Both use the func(http.HandlerFunc) http.HandlerFunc shape; the API router
adapts them to chi with a small wrapper:

	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(chiMiddleware(middleware.Compression))

Compression Details:

The compression writer buffers the first CompressMinSize bytes. If the
handler finishes before the buffer fills, the body is sent uncompressed
with its original headers. Otherwise Content-Encoding: gzip and
Vary: Accept-Encoding are set, Content-Length is dropped, and the rest of
the body streams through a pooled gzip.Writer. Responses that already carry
a Content-Encoding are passed through.

See Also:

  - internal/api: the router that installs these middleware
  - internal/metrics: Prometheus metric definitions
*/
package middleware
