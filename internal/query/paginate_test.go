// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package query

import (
	"math"
	"testing"

	"github.com/tomtom215/companydesk/internal/models"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		size     int
		wantIDs  []int64
		wantMeta models.Pagination
	}{
		{"page 2 of size 2", 2, 2, []int64{3, 4}, models.Pagination{
			CurrentPage: 2, PageSize: 2, TotalItems: 5, TotalPages: 3,
			HasNextPage: true, HasPreviousPage: true, StartItem: 3, EndItem: 4,
		}},
		{"last partial page", 3, 2, []int64{5}, models.Pagination{
			CurrentPage: 3, PageSize: 2, TotalItems: 5, TotalPages: 3,
			HasNextPage: false, HasPreviousPage: true, StartItem: 5, EndItem: 5,
		}},
		{"first page", 1, 2, []int64{1, 2}, models.Pagination{
			CurrentPage: 1, PageSize: 2, TotalItems: 5, TotalPages: 3,
			HasNextPage: true, HasPreviousPage: false, StartItem: 1, EndItem: 2,
		}},
		{"past the end", 4, 2, []int64{}, models.Pagination{
			CurrentPage: 4, PageSize: 2, TotalItems: 5, TotalPages: 3,
			HasNextPage: false, HasPreviousPage: true, StartItem: 0, EndItem: 0,
		}},
		{"single page", 1, 50, []int64{1, 2, 3, 4, 5}, models.Pagination{
			CurrentPage: 1, PageSize: 50, TotalItems: 5, TotalPages: 1, StartItem: 1, EndItem: 5,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, meta := Paginate(pointers(fixtureDataset()), tt.page, tt.size)
			if got := ids(items); !equalIDs(got, tt.wantIDs) {
				t.Errorf("items = %v, want %v", got, tt.wantIDs)
			}
			if meta != tt.wantMeta {
				t.Errorf("meta = %+v, want %+v", meta, tt.wantMeta)
			}
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	items, meta := Paginate(nil, 1, 10)
	if items == nil || len(items) != 0 {
		t.Errorf("Expected empty non-nil page, got %v", items)
	}
	if meta.TotalPages != 0 || meta.HasNextPage || meta.StartItem != 0 || meta.EndItem != 0 {
		t.Errorf("unexpected meta for empty set: %+v", meta)
	}
}

func TestPaginateHugePage(t *testing.T) {
	const huge = math.MaxInt/50 + 3

	items, meta := Paginate(pointers(fixtureDataset()), huge, 50)
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
	if meta.CurrentPage != huge || meta.TotalPages != 1 || meta.HasNextPage || !meta.HasPreviousPage {
		t.Errorf("unexpected meta: %+v", meta)
	}
	if meta.StartItem != 0 || meta.EndItem != 0 {
		t.Errorf("StartItem/EndItem = %d/%d, want 0/0", meta.StartItem, meta.EndItem)
	}

	items, meta = Paginate(pointers(fixtureDataset()), 2, math.MaxInt)
	if len(items) != 0 || meta.TotalPages != 1 {
		t.Errorf("max page size: %d items, meta %+v", len(items), meta)
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, 50},
		{-3, -1, 1, 50},
		{2, 5000, 2, 1000},
		{7, 25, 7, 25},
	}
	for _, tt := range tests {
		p, s := normalizePage(tt.page, tt.size, 50, 1000)
		if p != tt.wantPage || s != tt.wantSize {
			t.Errorf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)", tt.page, tt.size, p, s, tt.wantPage, tt.wantSize)
		}
	}
}
