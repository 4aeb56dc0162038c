// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package models

// ResultPage is the response body of POST /companies.
//
// Companies is the requested page after search, filter and sort. Properties
// and PropertyValues are passed through from the upstream dataset untouched.
// SearchInfo is only present when a non-blank search query was applied.
type ResultPage struct {
	Companies      []*Company      `json:"Companies"`
	Properties     []Property      `json:"Properties"`
	PropertyValues []PropertyValue `json:"PropertyValues"`
	Pagination     Pagination      `json:"Pagination"`
	SearchInfo     *SearchInfo     `json:"SearchInfo,omitempty"`
	CacheInfo      CacheInfo       `json:"CacheInfo"`
}

// Pagination describes the returned slice relative to the filtered set.
// StartItem and EndItem are 1-based and both 0 when the page is empty.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	StartItem       int  `json:"startItem"`
	EndItem         int  `json:"endItem"`
}

// SearchInfo reports what the free-text search did.
// SearchTime is in milliseconds.
type SearchInfo struct {
	Query          string   `json:"query"`
	FieldsSearched []string `json:"fieldsSearched"`
	TotalMatches   int      `json:"totalMatches"`
	SearchTime     float64  `json:"searchTime"`
}

// CacheInfo reports whether the dataset came from the cache and when that
// entry expires (RFC3339 with milliseconds, UTC). Key is a fingerprint of
// the cache key, not the key itself.
type CacheInfo struct {
	Hit       bool   `json:"hit"`
	Key       string `json:"key"`
	ExpiresAt string `json:"expiresAt"`
}

// CacheStatsResponse is the body of GET /cache.
type CacheStatsResponse struct {
	Stats   CacheStatsBody    `json:"stats"`
	Actions map[string]string `json:"actions"`
}

// CacheStatsBody carries point-in-time cache counts plus the number of
// expired entries removed by the sweep that ran for this request.
type CacheStatsBody struct {
	Total            int `json:"total"`
	Active           int `json:"active"`
	Expired          int `json:"expired"`
	CleanedUpExpired int `json:"cleanedUpExpired"`
}

// CacheClearedResponse is the body of DELETE /cache and DELETE /companies.
type CacheClearedResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Removed   int    `json:"removed"`
}

// FieldCatalog lists field names clients may use for search and sort.
type FieldCatalog struct {
	DefaultSearchFields []string `json:"defaultSearchFields"`
	SearchFields        []string `json:"searchFields"`
	SortFields          []string `json:"sortFields"`
	Filters             []string `json:"filters"`
}
