// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

/*
Package upstream talks to the line-of-business browse API that owns the
company directory.

The API has one operation: POST the base browse parameters as a JSON object
and receive every matching company together with the property lookup arrays.
It has no paging, search or sorting of its own, so the proxy fetches the whole
dataset once per distinct parameter set and caches it.

# Components

  - Client: plain HTTP client with an optional x/time/rate throttle
  - CircuitBreakerClient: sony/gobreaker wrapper around any Fetcher
  - UpstreamError: typed failure carrying the upstream status and body

# Error Mapping

Handlers translate errors as follows:

  - *UpstreamError with a status: answered with that status
  - *UpstreamError with StatusCode 0 (transport, decode, throttle): 502
  - ErrCircuitOpen: 503

Calls are never retried; a failed browse is reported to the caller.

# Circuit Breaker States

	closed    -> normal operation, failures counted per interval
	open      -> calls rejected with ErrCircuitOpen until the timeout elapses
	half-open -> a limited number of probe calls decide whether to close

Breaker state is exported as circuit_breaker_state{name="upstream-browse"}.
*/
package upstream
