// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

/*
Package models defines the data structures shared by the Companydesk
packages.

Key Components:

  - Company: one record of the upstream company browse endpoint
  - Property, PropertyValue: pass-through lookup arrays
  - Dataset: the full upstream response, cached per base query
  - BrowseRequest: the body of POST /companies (base + view parameters)
  - CompanyFilters: structured predicates applied after search
  - ResultPage: the paginated response with pagination, search and cache info

JSON Conventions:

Upstream-facing types (Company, Property, PropertyValue, Dataset and the base
fields of BrowseRequest) use the upstream's PascalCase keys verbatim so that
records pass through without renaming. Types created by this service
(Pagination, SearchInfo, CacheInfo, CompanyFilters) use camelCase keys.

Nullable upstream columns are pointers without omitempty; they serialize as
null rather than disappearing from the payload.

Thread Safety:

Models are plain data. A Dataset held by the cache is shared between
concurrent requests and must be treated as read-only.
*/
package models
