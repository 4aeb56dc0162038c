// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package logging

import (
	"strings"
	"testing"
)

func TestIsSensitiveKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want bool
	}{
		{"SqlPassword", true},
		{"sqlpassword", true},
		{"ApiToken", true},
		{"client_secret", true},
		{"Authorization", true},
		{"SqlUserName", false},
		{"Database", false},
		{"StateSelector", false},
	}
	for _, tt := range tests {
		if got := IsSensitiveKey(tt.key); got != tt.want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestRedactParams(t *testing.T) {
	t.Parallel()

	params := map[string]interface{}{
		"SqlUserName":   "crm",
		"SqlPassword":   "hunter2",
		"StateSelector": 1,
		"Nested":        map[string]interface{}{"token": "abc", "view": 2},
	}

	got := RedactParams(params)

	if got["SqlPassword"] != Redacted {
		t.Errorf("Expected SqlPassword redacted, got %v", got["SqlPassword"])
	}
	if got["SqlUserName"] != "crm" || got["StateSelector"] != 1 {
		t.Errorf("Expected non-secret values preserved, got %v", got)
	}
	nested, ok := got["Nested"].(map[string]interface{})
	if !ok || nested["token"] != Redacted || nested["view"] != 2 {
		t.Errorf("Expected nested token redacted, got %v", got["Nested"])
	}
	if params["SqlPassword"] != "hunter2" {
		t.Error("Expected input map to be left untouched")
	}
	if RedactParams(nil) != nil {
		t.Error("Expected nil for nil input")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	if got := SanitizeLogValue("acme\r\n{\"level\":\"error\"}"); strings.ContainsAny(got, "\r\n") {
		t.Errorf("Expected control characters removed, got %q", got)
	}
	if got := SanitizeLogValue("Ромашка"); got != "Ромашка" {
		t.Errorf("Expected Cyrillic preserved, got %q", got)
	}

	long := strings.Repeat("я", maxLogValueLen+10)
	got := SanitizeLogValue(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected truncation marker, got %q", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != maxLogValueLen {
		t.Errorf("Expected %d runes kept, got %d", maxLogValueLen, n)
	}
}
