// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

// Package browse orchestrates a company browse request: build the cache key
// from the base parameters, serve the dataset from cache or fetch it from the
// upstream, then run the query pipeline over it.
package browse
