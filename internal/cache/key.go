// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// CompaniesPrefix namespaces keys for upstream company datasets.
const CompaniesPrefix = "companies"

// TransientParams are request keys that only shape the view of a dataset
// (pagination, sort, search, filters). They never reach the upstream API and
// never take part in a cache key.
var TransientParams = []string{
	"Page",
	"PageSize",
	"SortBy",
	"SortDirection",
	"Search",
	"SearchFields",
	"Filters",
}

// StripTransient returns a shallow copy of params without TransientParams.
// The input map is not modified.
func StripTransient(params map[string]interface{}) map[string]interface{} {
	base := make(map[string]interface{}, len(params))
	for k, v := range params {
		base[k] = v
	}
	for _, k := range TransientParams {
		delete(base, k)
	}
	return base
}

// BuildKey derives a deterministic cache key from a parameter object.
//
// The result is prefix + ":" + canonical JSON of params, where object keys
// are emitted in lexicographic order at every nesting level. Two parameter
// maps that are deeply equal produce byte-identical keys regardless of the
// order in which their keys were inserted.
//
// Callers must strip transient parameters first (see StripTransient).
func BuildKey(prefix string, params map[string]interface{}) (string, error) {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte(':')
	if err := writeCanonical(&b, params); err != nil {
		return "", fmt.Errorf("build cache key: %w", err)
	}
	return b.String(), nil
}

// Fingerprint returns a key safe to show to clients: the prefix followed by
// the hex SHA-256 of the full key. Base parameters carry upstream
// credentials, so the raw key never leaves the process.
func Fingerprint(key string) string {
	prefix := key
	if i := strings.IndexByte(key, ':'); i >= 0 {
		prefix = key[:i]
	}
	sum := sha256.Sum256([]byte(key))
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// writeCanonical encodes v with sorted object keys. Maps are walked
// explicitly so ordering does not depend on the encoder's map handling;
// scalars and anything else are delegated to go-json.
func writeCanonical(b *strings.Builder, v interface{}) error {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			name, err := json.Marshal(k)
			if err != nil {
				return err
			}
			b.Write(name)
			b.WriteByte(':')
			if err := writeCanonical(b, val[k]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
		return nil

	case []interface{}:
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeCanonical(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil

	default:
		data, err := json.Marshal(val)
		if err != nil {
			return err
		}
		b.Write(data)
		return nil
	}
}
