// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/companydesk/internal/browse"
	"github.com/tomtom215/companydesk/internal/cache"
	"github.com/tomtom215/companydesk/internal/logging"
	"github.com/tomtom215/companydesk/internal/models"
	"github.com/tomtom215/companydesk/internal/query"
)

// Response headers set on browse results.
const (
	headerCache             = "X-Cache"
	headerProcessingTime    = "X-Processing-Time"
	headerSearchTime        = "X-Search-Time"
	headerTotalBeforeFilter = "X-Total-Before-Filter"
	headerTotalAfterFilter  = "X-Total-After-Filter"
)

// Companies handles POST /companies.
//
// The body carries the upstream base parameters plus the view parameters
// (Page, PageSize, SortBy, SortDirection, Search, SearchFields, Filters).
// The dataset for the base parameters is served from cache or fetched once,
// then searched, filtered, sorted and paginated in memory.
func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	in, ok := decodeBrowseInput(w, r)
	if !ok {
		return
	}
	params := query.ParamsFromRequest(&in.req)

	out, err := h.service.Browse(r.Context(), in.base, params)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	page := buildResultPage(out)

	hdr := w.Header()
	hdr.Set("Cache-Control", cacheControl(h.now(), out.ExpiresAt))
	hdr.Set(headerCache, cacheStatus(out.CacheHit))
	hdr.Set(headerTotalBeforeFilter, strconv.Itoa(out.Result.TotalBeforeFilter))
	hdr.Set(headerTotalAfterFilter, strconv.Itoa(out.Result.TotalAfterFilter))
	if s := out.Result.Search; s != nil {
		hdr.Set(headerSearchTime, formatMillisFine(s.Elapsed))
	}
	hdr.Set(headerProcessingTime, formatMillis(time.Since(start)))

	logging.CtxDebug(r.Context()).
		Bool("cache_hit", out.CacheHit).
		Int("total", out.Result.TotalBeforeFilter).
		Int("matched", out.Result.TotalAfterFilter).
		Int("page", page.Pagination.CurrentPage).
		Int("returned", len(page.Companies)).
		Str("search", logging.SanitizeLogValue(params.Search)).
		Msg("Companies served")

	writeJSON(w, http.StatusOK, page)
}

// CompaniesMethodNotAllowed answers GET /companies.
func (h *Handler) CompaniesMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).MethodNotAllowed(msgMethodNotAllowed, "POST, DELETE")
}

// CompanyFields handles GET /companies/fields with the names accepted by
// SearchFields, SortBy and Filters.
func (h *Handler) CompanyFields(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	NewResponseWriter(w, r).Success(models.FieldCatalog{
		DefaultSearchFields: query.DefaultSearchFields,
		SearchFields:        query.AllSearchFields,
		SortFields:          query.FieldNames(),
		Filters:             query.FilterNames,
	})
}

// buildResultPage assembles the response body from a browse outcome.
func buildResultPage(out *browse.Outcome) *models.ResultPage {
	companies := out.Result.Items
	if companies == nil {
		companies = []*models.Company{}
	}

	page := &models.ResultPage{
		Companies:      companies,
		Properties:     out.Dataset.Properties,
		PropertyValues: out.Dataset.PropertyValues,
		Pagination:     out.Result.Pagination,
		CacheInfo: models.CacheInfo{
			Hit:       out.CacheHit,
			Key:       cache.Fingerprint(out.Key),
			ExpiresAt: out.ExpiresAt.UTC().Format(isoMillis),
		},
	}
	if page.Properties == nil {
		page.Properties = []models.Property{}
	}
	if page.PropertyValues == nil {
		page.PropertyValues = []models.PropertyValue{}
	}

	if s := out.Result.Search; s != nil {
		page.SearchInfo = &models.SearchInfo{
			Query:          s.Query,
			FieldsSearched: s.Fields,
			TotalMatches:   s.Matches,
			SearchTime:     millis(s.Elapsed),
		}
	}
	return page
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
