// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package query

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tomtom215/companydesk/internal/models"
)

// Sorter orders companies by one field. Strings are compared with a
// case-insensitive collator for the configured locale.
//
// Collators keep per-call buffers, so each Sort borrows one from a pool.
type Sorter struct {
	pool sync.Pool
}

// NewSorter creates a Sorter collating strings for tag.
func NewSorter(tag language.Tag) *Sorter {
	s := &Sorter{}
	s.pool.New = func() any {
		return collate.New(tag, collate.IgnoreCase)
	}
	return s
}

// sortKey is a field value prepared once per item before sorting.
type sortKey struct {
	null  bool
	isNum bool
	num   float64
	text  string
}

func makeKey(field string, v Value) sortKey {
	if dateFields[field] {
		if v.Kind != KindString {
			return sortKey{null: true}
		}
		t, ok := ParseDate(v.Str)
		if !ok {
			return sortKey{null: true}
		}
		return sortKey{isNum: true, num: float64(t.UnixMicro())}
	}

	switch v.Kind {
	case KindNull:
		return sortKey{null: true}
	case KindNumber:
		return sortKey{isNum: true, num: v.Num}
	case KindBool:
		if v.Bool {
			return sortKey{isNum: true, num: 1}
		}
		return sortKey{isNum: true, num: 0}
	default:
		return sortKey{text: v.Str}
	}
}

// SortActive reports whether sortBy names a known field.
func SortActive(sortBy string) bool {
	_, ok := CanonicalField(sortBy)
	return ok
}

// Sort returns items stably ordered by sortBy. Nulls sort last in either
// direction; direction "desc" (any case) reverses non-null comparisons. An
// unknown or empty sortBy returns items unchanged.
func (s *Sorter) Sort(items []*models.Company, sortBy, direction string) []*models.Company {
	field, ok := CanonicalField(sortBy)
	if !ok || len(items) < 2 {
		return items
	}
	acc := Fields[field]
	desc := strings.EqualFold(direction, models.SortDesc)

	col := s.pool.Get().(*collate.Collator)
	defer s.pool.Put(col)

	type entry struct {
		item *models.Company
		key  sortKey
	}
	entries := make([]entry, len(items))
	for i, c := range items {
		entries[i] = entry{item: c, key: makeKey(field, acc(c))}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].key, entries[j].key
		if a.null || b.null {
			return !a.null && b.null
		}
		cmp := compareKeys(a, b, col)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	out := make([]*models.Company, len(entries))
	for i := range entries {
		out[i] = entries[i].item
	}
	return out
}

// compareKeys orders two non-null keys: numerically when both are numbers,
// otherwise by collated text.
func compareKeys(a, b sortKey, col *collate.Collator) int {
	if a.isNum && b.isNum {
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	}
	return col.CompareString(keyText(a), keyText(b))
}

func keyText(k sortKey) string {
	if k.isNum {
		text, _ := Value{Kind: KindNumber, Num: k.num}.Text()
		return text
	}
	return k.text
}
