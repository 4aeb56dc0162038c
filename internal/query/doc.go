// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

/*
Package query implements the in-memory view over a cached company dataset.

Stages run in a fixed order:

 1. Search: free-text, case-folded substring match over a set of fields
 2. Filter: AND-combined structured predicates (text, flags, date ranges)
 3. Sort: stable single-field ordering, nulls last, locale collation
 4. Paginate: page/pageSize slicing with navigation metadata

Fields are read through the Fields accessor table instead of reflection;
each accessor returns a typed Value so numbers sort numerically and null
columns are distinguishable from empty strings.

The dataset is never modified. Every run works on its own slice of
pointers into the cached Companies array.
*/
package query
