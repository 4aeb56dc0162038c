// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package api

import (
	"net/http"
	"time"
)

// breakerOpen is the state string reported by an open circuit breaker.
const breakerOpen = "open"

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK while the process is serving, regardless of the upstream.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 503 while the upstream circuit breaker is open: requests that miss
// the cache would be rejected until the breaker probes the upstream again.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	state := "unknown"
	breakerName := ""
	if h.breaker != nil {
		state = h.breaker.State()
		breakerName = h.breaker.Name()
	}
	ready := state != breakerOpen

	data := map[string]interface{}{
		"ready":          ready,
		"upstream_state": state,
		"breaker":        breakerName,
		"uptime":         time.Since(h.startTime).Seconds(),
	}

	rw := NewResponseWriter(w, r)
	if !ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Upstream circuit breaker is open", data)
		return
	}
	rw.Success(data)
}
