// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package query

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/tomtom215/companydesk/internal/models"
)

// DefaultSearchFields are searched when the request names none.
var DefaultSearchFields = []string{"FileAs", "LegalName", "LegalCode"}

// AllSearchFields is the catalogue offered to clients for advanced search.
var AllSearchFields = []string{"FileAs", "LegalName", "LegalCode", "KPP", "Phone1", "Email", "City", "Industries"}

// ResolveSearchFields canonicalizes requested field names, dropping unknown
// ones and duplicates. When nothing usable remains the defaults are used.
func ResolveSearchFields(requested []string) []string {
	fields := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, name := range requested {
		canonical, ok := CanonicalField(name)
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		fields = append(fields, canonical)
	}
	if len(fields) == 0 {
		return append([]string(nil), DefaultSearchFields...)
	}
	return fields
}

// SearchActive reports whether q triggers the search stage.
func SearchActive(q string) bool {
	return strings.TrimSpace(q) != ""
}

// Search keeps the companies where any of fields contains the trimmed query,
// compared under Unicode case folding. Null fields never match.
// The result is a new slice; items is not modified.
func Search(items []*models.Company, q string, fields []string) []*models.Company {
	q = strings.TrimSpace(q)
	if q == "" {
		return items
	}

	folder := cases.Fold()
	needle := folder.String(q)

	accessors := make([]Accessor, 0, len(fields))
	for _, name := range fields {
		if acc, ok := Fields[name]; ok {
			accessors = append(accessors, acc)
		}
	}

	out := make([]*models.Company, 0)
	for _, c := range items {
		for _, acc := range accessors {
			text, ok := acc(c).Text()
			if ok && strings.Contains(folder.String(text), needle) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
