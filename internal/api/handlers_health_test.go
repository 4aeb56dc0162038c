// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthLive(t *testing.T) {
	env := newTestEnv(t)
	env.breaker.state = breakerOpen

	w := env.do(http.MethodGet, "/health/live", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even with the breaker open", w.Code)
	}
	var resp APIResponse
	decodeBody(t, w, &resp)
	if !resp.Success {
		t.Error("success = false")
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		state    string
		wantCode int
	}{
		{"closed", http.StatusOK},
		{"half-open", http.StatusOK},
		{breakerOpen, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			env := newTestEnv(t)
			env.breaker.state = tt.state

			w := env.do(http.MethodGet, "/api/health/ready", "")
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				if apiErr := decodeError(t, w); apiErr.Code != ErrCodeServiceUnavailable {
					t.Errorf("code = %q", apiErr.Code)
				}
			}
		})
	}
}

func TestHealthReady_NoBreaker(t *testing.T) {
	h := NewHandler(nil, nil)
	w := httptest.NewRecorder()
	h.HealthReady(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
