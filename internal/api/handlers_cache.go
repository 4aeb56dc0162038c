// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package api

import (
	"net/http"

	"github.com/tomtom215/companydesk/internal/logging"
	"github.com/tomtom215/companydesk/internal/models"
)

const msgCacheCleared = "Cache cleared successfully"

// cacheActions tells operators how the cache endpoints behave.
var cacheActions = map[string]string{
	"clear":   "/api/cache (DELETE)",
	"cleanup": "Automatic on GET",
}

// CacheStats handles GET /cache. It reports entry counts taken before the
// expired-entry sweep, then the number of entries the sweep removed.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.service.CacheStats()

	logging.CtxDebug(r.Context()).
		Int("total", stats.Total).
		Int("active", stats.Active).
		Int("cleaned", stats.CleanedUpExpired).
		Msg("Cache stats requested")

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, models.CacheStatsResponse{
		Stats:   stats,
		Actions: cacheActions,
	})
}

// CacheClear handles DELETE /cache and DELETE /companies.
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	removed := h.service.ClearCache()

	logging.CtxInfo(r.Context()).
		Int("removed", removed).
		Str("path", r.URL.Path).
		Msg("Cache cleared via API")

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, models.CacheClearedResponse{
		Message:   msgCacheCleared,
		Timestamp: h.now().UTC().Format(isoMillis),
		Removed:   removed,
	})
}
