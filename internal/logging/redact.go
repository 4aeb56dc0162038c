// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package logging

import (
	"strings"
	"unicode"
)

// Redacted replaces secret values in log output.
const Redacted = "[REDACTED]"

// maxLogValueLen caps client-supplied strings written to logs.
const maxLogValueLen = 200

// sensitiveKeyParts mark a parameter name as secret when contained in it
// (case-insensitive).
var sensitiveKeyParts = []string{
	"password",
	"secret",
	"token",
	"authorization",
}

// IsSensitiveKey reports whether a parameter of this name must not be logged.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// RedactParams returns a shallow copy of params with sensitive values
// replaced by Redacted. Nested maps are redacted recursively.
func RedactParams(params map[string]interface{}) map[string]interface{} {
	if params == nil {
		return nil
	}
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		switch {
		case IsSensitiveKey(k):
			out[k] = Redacted
		default:
			if nested, ok := v.(map[string]interface{}); ok {
				out[k] = RedactParams(nested)
			} else {
				out[k] = v
			}
		}
	}
	return out
}

// SanitizeLogValue strips control characters (CR, LF and friends) from a
// client-supplied value and truncates it, so it cannot forge log lines.
func SanitizeLogValue(s string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	if runes := []rune(clean); len(runes) > maxLogValueLen {
		return string(runes[:maxLogValueLen]) + "..."
	}
	return clean
}
