// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed by the API router at /metrics.

# Available Metrics

HTTP Metrics:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_evictions_total{cache_type}
  - cache_entries{cache_type}
  - cache_janitor_sweeps_total

Upstream Metrics:
  - upstream_request_duration_seconds{outcome}
  - upstream_errors_total{class}: 4xx, 5xx, transport, decode, throttled
  - upstream_dataset_companies
  - upstream_shared_fetches_total: callers that joined an in-flight fetch

Circuit Breaker Metrics:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Query Pipeline Metrics:
  - query_pipeline_duration_seconds{stage}
  - query_pipeline_records{stage}

# Usage

	start := time.Now()
	// ... handle request
	metrics.RecordAPIRequest(r.Method, route, strconv.Itoa(status), time.Since(start))

Labels are bounded: endpoints come from chi route patterns, never raw paths,
and error classes are a fixed set.
*/
package metrics
