// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package query

import "github.com/tomtom215/companydesk/internal/models"

// Paginate returns the requested page of items and its metadata.
//
// page and pageSize must already be normalized (both >= 1). A page past the
// end yields an empty slice with StartItem and EndItem set to 0.
func Paginate(items []*models.Company, page, pageSize int) ([]*models.Company, models.Pagination) {
	total := len(items)
	totalPages := 0
	if total > 0 {
		totalPages = (total-1)/pageSize + 1
	}

	p := models.Pagination{
		CurrentPage:     page,
		PageSize:        pageSize,
		TotalItems:      total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}

	// Checked before multiplying so a huge page cannot overflow the offset.
	if page > totalPages {
		return []*models.Company{}, p
	}
	start := (page - 1) * pageSize
	end := total
	if total-start > pageSize {
		end = start + pageSize
	}

	p.StartItem = start + 1
	p.EndItem = end
	return items[start:end], p
}

// normalizePage applies defaults and the page size ceiling.
func normalizePage(page, pageSize, defaultSize, maxSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if maxSize > 0 && pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}
