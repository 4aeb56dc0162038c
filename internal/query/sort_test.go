// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package query

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/tomtom215/companydesk/internal/models"
)

func TestSorterSort(t *testing.T) {
	t.Parallel()
	sorter := NewSorter(language.Russian)

	tests := []struct {
		name      string
		sortBy    string
		direction string
		want      []int64
	}{
		{"numeric asc nulls last", "CompanySizeId", "asc", []int64{3, 5, 1, 4, 2}},
		{"numeric desc nulls last", "CompanySizeId", "desc", []int64{4, 1, 5, 3, 2}},
		{"direction is case-insensitive", "CompanySizeId", "DESC", []int64{4, 1, 5, 3, 2}},
		{"string asc", "FileAs", "", []int64{1, 2, 5, 3, 4}},
		{"field name is case-insensitive", "fileas", "asc", []int64{1, 2, 5, 3, 4}},
		{"dates by instant", "Created", "asc", []int64{3, 1, 4, 2, 5}},
		{"dates desc keep nulls last", "Created", "desc", []int64{2, 4, 1, 3, 5}},
		{"stable on ties", "ApplyVAT", "asc", []int64{2, 3, 4, 1, 5}},
		{"stable on ties desc", "ApplyVAT", "desc", []int64{1, 5, 2, 3, 4}},
		{"unknown field leaves order", "Bogus", "asc", []int64{1, 2, 3, 4, 5}},
		{"empty field leaves order", "", "desc", []int64{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ids(sorter.Sort(pointers(fixtureDataset()), tt.sortBy, tt.direction))
			if !equalIDs(got, tt.want) {
				t.Errorf("Sort(%s %s) = %v, want %v", tt.sortBy, tt.direction, got, tt.want)
			}
		})
	}
}

func TestSorterCollation(t *testing.T) {
	sorter := NewSorter(language.Russian)
	items := []*models.Company{
		{Id: 1, FileAs: "Яблоко"},
		{Id: 2, FileAs: "абрикос"},
		{Id: 3, FileAs: "Банан"},
	}
	got := ids(sorter.Sort(items, "FileAs", "asc"))
	if !equalIDs(got, []int64{2, 3, 1}) {
		t.Errorf("collated order = %v, want [2 3 1]", got)
	}
}

func TestSorterDoesNotReorderInput(t *testing.T) {
	sorter := NewSorter(language.English)
	items := pointers(fixtureDataset())
	_ = sorter.Sort(items, "FileAs", "desc")
	if got := ids(items); !equalIDs(got, []int64{1, 2, 3, 4, 5}) {
		t.Errorf("input reordered to %v", got)
	}
}

func BenchmarkSorterSort(b *testing.B) {
	sorter := NewSorter(language.Russian)
	ds := &models.Dataset{Companies: make([]models.Company, 5000)}
	for i := range ds.Companies {
		ds.Companies[i] = models.Company{Id: int64(i), FileAs: string(rune('A' + i%26)), Created: "2024-01-10"}
	}
	items := pointers(ds)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sorter.Sort(items, "FileAs", "asc")
	}
}
