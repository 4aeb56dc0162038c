// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package upstream

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/companydesk/internal/config"
	"github.com/tomtom215/companydesk/internal/logging"
)

const sampleDataset = `{
  "Companies": [
    {"Id": 1, "FileAs": "Acme", "LegalName": "Acme LLC", "LegalCode": "7701", "Email": null, "Private": false},
    {"Id": 2, "FileAs": "Globex", "LegalName": "Globex JSC", "LegalCode": null, "Email": "info@globex.test", "Private": true}
  ],
  "Properties": [{"Id": 10, "Name": "Segment", "Type": "string", "Format": "", "BuiltIn": false, "Description": null, "Guid": "g", "Visible": true}],
  "PropertyValues": [{"PropertyId": 10, "DocumentId": 1, "Value": "SMB"}]
}`

func testUpstreamConfig(url string) *config.UpstreamConfig {
	return &config.UpstreamConfig{
		URL:     url,
		Timeout: 5 * time.Second,
		Breaker: config.BreakerConfig{
			MaxRequests:  1,
			Timeout:      50 * time.Millisecond,
			MinRequests:  3,
			FailureRatio: 0.5,
		},
	}
}

func TestClientFetchCompanies(t *testing.T) {
	var mu sync.Mutex
	var gotBody map[string]interface{}
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDataset))
	}))
	defer server.Close()

	client := NewClient(testUpstreamConfig(server.URL))
	ctx := logging.ContextWithRequestID(context.Background(), "req-42")

	ds, err := client.FetchCompanies(ctx, map[string]interface{}{"SqlUserName": "u", "View": 1})
	if err != nil {
		t.Fatalf("FetchCompanies() error = %v", err)
	}

	if ds.Len() != 2 {
		t.Fatalf("Expected 2 companies, got %d", ds.Len())
	}
	if ds.Companies[1].Email == nil || *ds.Companies[1].Email != "info@globex.test" {
		t.Errorf("Expected Globex email to decode, got %v", ds.Companies[1].Email)
	}
	if ds.Companies[0].LegalCode == nil || ds.Companies[1].LegalCode != nil {
		t.Error("Expected LegalCode nullability to be preserved")
	}
	if len(ds.Properties) != 1 || len(ds.PropertyValues) != 1 {
		t.Errorf("Expected lookup arrays to pass through, got %d/%d", len(ds.Properties), len(ds.PropertyValues))
	}

	mu.Lock()
	defer mu.Unlock()
	if gotBody["SqlUserName"] != "u" {
		t.Errorf("Expected SqlUserName forwarded, got %v", gotBody)
	}
	if ct := gotHeaders.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if accept := gotHeaders.Get("Accept"); accept != "application/json" {
		t.Errorf("Accept = %q, want application/json", accept)
	}
	if id := gotHeaders.Get("X-Request-ID"); id != "req-42" {
		t.Errorf("X-Request-ID = %q, want req-42", id)
	}
}

func TestClientNormalizesNullArrays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Companies": null}`))
	}))
	defer server.Close()

	ds, err := NewClient(testUpstreamConfig(server.URL)).FetchCompanies(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("FetchCompanies() error = %v", err)
	}
	if ds.Companies == nil || ds.Properties == nil || ds.PropertyValues == nil {
		t.Errorf("Expected empty non-nil slices, got %+v", ds)
	}
}

func TestClientErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantMsg string
	}{
		{"server error", http.StatusInternalServerError, "External API error: 500 Internal Server Error"},
		{"bad request", http.StatusBadRequest, "External API error: 400 Bad Request"},
		{"unavailable", http.StatusServiceUnavailable, "External API error: 503 Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("upstream said no"))
			}))
			defer server.Close()

			_, err := NewClient(testUpstreamConfig(server.URL)).FetchCompanies(context.Background(), map[string]interface{}{})
			var upErr *UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("Expected *UpstreamError, got %T: %v", err, err)
			}
			if upErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", upErr.StatusCode, tt.status)
			}
			if upErr.HTTPStatus() != tt.status {
				t.Errorf("HTTPStatus() = %d, want %d", upErr.HTTPStatus(), tt.status)
			}
			if upErr.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", upErr.Error(), tt.wantMsg)
			}
			if upErr.Body != "upstream said no" {
				t.Errorf("Body = %q", upErr.Body)
			}
		})
	}
}

func TestClientDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	_, err := NewClient(testUpstreamConfig(server.URL)).FetchCompanies(context.Background(), map[string]interface{}{})
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("Expected *UpstreamError, got %T", err)
	}
	if upErr.StatusCode != 0 || upErr.HTTPStatus() != http.StatusBadGateway {
		t.Errorf("Expected status 0 mapped to 502, got %d/%d", upErr.StatusCode, upErr.HTTPStatus())
	}
	if !strings.HasPrefix(upErr.Error(), "External API error: ") {
		t.Errorf("Error() = %q", upErr.Error())
	}
}

func TestClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(testUpstreamConfig(url)).FetchCompanies(context.Background(), map[string]interface{}{})
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("Expected *UpstreamError, got %T", err)
	}
	if upErr.HTTPStatus() != http.StatusBadGateway {
		t.Errorf("HTTPStatus() = %d, want 502", upErr.HTTPStatus())
	}
}

func TestClientRateLimiterHonoursContext(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"Companies": []}`))
	}))
	defer server.Close()

	cfg := testUpstreamConfig(server.URL)
	cfg.RateLimit = 0.001
	cfg.Burst = 1
	client := NewClient(cfg)

	if _, err := client.FetchCompanies(context.Background(), map[string]interface{}{}); err != nil {
		t.Fatalf("first call should use the burst token: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.FetchCompanies(ctx, map[string]interface{}{})
	if err == nil {
		t.Fatal("Expected throttled call to fail once the context expires")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("Expected upstream to be called once, got %d", got)
	}
}

func TestReadBodyForError(t *testing.T) {
	small := readBodyForError(strings.NewReader("boom"))
	if string(small) != "boom" {
		t.Errorf("readBodyForError() = %q, want boom", small)
	}

	large := readBodyForError(bytes.NewReader(bytes.Repeat([]byte("x"), maxErrorBodySize+100)))
	if !bytes.HasSuffix(large, []byte("... (truncated)")) {
		t.Error("Expected truncation marker on oversized body")
	}
	if len(large) > maxErrorBodySize+32 {
		t.Errorf("Expected body capped near %d bytes, got %d", maxErrorBodySize, len(large))
	}
}
