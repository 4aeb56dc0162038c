// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/text/language"

	"github.com/tomtom215/companydesk/internal/browse"
	"github.com/tomtom215/companydesk/internal/cache"
	"github.com/tomtom215/companydesk/internal/config"
	"github.com/tomtom215/companydesk/internal/models"
	"github.com/tomtom215/companydesk/internal/query"
)

func strPtr(s string) *string { return &s }

// testDataset is a small directory with Cyrillic and Latin names.
func testDataset() *models.Dataset {
	return &models.Dataset{
		Companies: []models.Company{
			{Id: 1, FileAs: "Альфа", LegalName: "ООО Альфа", LegalCode: strPtr("7701000001"), Phone1: strPtr("+7 (495) 111-11-11")},
			{Id: 2, FileAs: "Бета", LegalName: "АО Бета", LegalCode: strPtr("7701000002"), Email: strPtr("info@beta.example")},
			{Id: 3, FileAs: "Gamma", LegalName: "Gamma LLC", LegalCode: strPtr("7701000003")},
			{Id: 4, FileAs: "=HYPERLINK(\"x\")", LegalName: "Формула"},
		},
		Properties:     []models.Property{},
		PropertyValues: []models.PropertyValue{},
	}
}

// stubFetcher serves a fixed dataset or error and records the parameters
// of the last call.
type stubFetcher struct {
	mu     sync.Mutex
	calls  atomic.Int32
	ds     *models.Dataset
	err    error
	params map[string]interface{}
}

func (f *stubFetcher) FetchCompanies(_ context.Context, params map[string]interface{}) (*models.Dataset, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.params = params
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.ds, nil
}

func (f *stubFetcher) lastParams() map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.params
}

// stubBreaker reports a fixed breaker state.
type stubBreaker struct {
	state string
}

func (b *stubBreaker) State() string { return b.state }
func (b *stubBreaker) Name() string  { return "upstream-api" }

// testEnv wires a real browse service over a stub upstream.
type testEnv struct {
	fetcher *stubFetcher
	breaker *stubBreaker
	cache   *cache.Cache
	handler *Handler
	router  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithSecurity(t, &config.SecurityConfig{
		CORSOrigins:       []string{"*"},
		RateLimitDisabled: true,
	})
}

func newTestEnvWithSecurity(t *testing.T, sec *config.SecurityConfig) *testEnv {
	t.Helper()

	fetcher := &stubFetcher{ds: testDataset()}
	breaker := &stubBreaker{state: "closed"}
	c := cache.New(5*time.Minute, cache.WithName("api-test"))
	pipeline := query.New(query.Options{
		DefaultPageSize: 50,
		MaxPageSize:     1000,
		Collation:       language.Russian,
	})
	svc := browse.NewService(c, fetcher, pipeline, browse.Options{TTL: 5 * time.Minute, DedupeInflight: true})
	handler := NewHandler(svc, breaker)

	return &testEnv{
		fetcher: fetcher,
		breaker: breaker,
		cache:   c,
		handler: handler,
		router:  NewRouter(handler, sec).SetupChi(),
	}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
}

// decodeError decodes an error envelope and returns its error.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) *APIError {
	t.Helper()
	var resp APIResponse
	decodeBody(t, w, &resp)
	if resp.Success {
		t.Fatalf("expected success=false, body %s", w.Body.String())
	}
	if resp.Error == nil {
		t.Fatalf("expected error in envelope, body %s", w.Body.String())
	}
	return resp.Error
}
