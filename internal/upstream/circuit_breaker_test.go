// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package upstream

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/companydesk/internal/config"
	"github.com/tomtom215/companydesk/internal/models"
)

// fakeFetcher returns err (or an empty dataset) and counts invocations.
type fakeFetcher struct {
	calls atomic.Int32
	err   atomic.Value // error
}

func (f *fakeFetcher) setErr(err error) {
	f.err.Store(errHolder{err})
}

type errHolder struct{ err error }

func (f *fakeFetcher) FetchCompanies(_ context.Context, _ map[string]interface{}) (*models.Dataset, error) {
	f.calls.Add(1)
	if h, ok := f.err.Load().(errHolder); ok && h.err != nil {
		return nil, h.err
	}
	return &models.Dataset{Companies: []models.Company{{Id: 1}}}, nil
}

func testBreakerConfig() config.BreakerConfig {
	return config.BreakerConfig{
		MaxRequests:  1,
		Timeout:      50 * time.Millisecond,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

// TestCircuitBreaker_OpensAfterFailures verifies the circuit opens once the
// failure ratio is reached and then fails fast without calling upstream
func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setErr(&UpstreamError{StatusCode: http.StatusInternalServerError, Status: "Internal Server Error"})
	cbc := NewCircuitBreaker(fetcher, testBreakerConfig())

	if cbc.State() != "closed" {
		t.Errorf("Expected initial state closed, got %s", cbc.State())
	}

	for i := 0; i < 3; i++ {
		if _, err := cbc.FetchCompanies(context.Background(), nil); err == nil {
			t.Fatalf("call %d: expected failure", i)
		}
	}

	if cbc.cb.State() != gobreaker.StateOpen {
		t.Fatalf("Expected circuit to be open after 3 failures, got %s", cbc.State())
	}

	_, err := cbc.FetchCompanies(context.Background(), nil)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
	if got := fetcher.calls.Load(); got != 3 {
		t.Errorf("Expected rejected call to skip upstream, got %d calls", got)
	}
}

// TestCircuitBreaker_ClientErrorsDoNotTrip verifies 4xx answers count as
// successes for the breaker while still being returned to the caller
func TestCircuitBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setErr(&UpstreamError{StatusCode: http.StatusBadRequest, Status: "Bad Request"})
	cbc := NewCircuitBreaker(fetcher, testBreakerConfig())

	for i := 0; i < 10; i++ {
		_, err := cbc.FetchCompanies(context.Background(), nil)
		var upErr *UpstreamError
		if !errors.As(err, &upErr) || upErr.StatusCode != http.StatusBadRequest {
			t.Fatalf("call %d: expected 400 UpstreamError, got %v", i, err)
		}
	}

	if cbc.State() != "closed" {
		t.Errorf("Expected circuit to stay closed on 4xx, got %s", cbc.State())
	}
	if counts := cbc.cb.Counts(); counts.TotalFailures != 0 {
		t.Errorf("Expected 0 breaker failures, got %d", counts.TotalFailures)
	}
}

// TestCircuitBreaker_RecoversAfterTimeout verifies open -> half-open -> closed
func TestCircuitBreaker_RecoversAfterTimeout(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setErr(&UpstreamError{Err: errors.New("connection refused")})
	cbc := NewCircuitBreaker(fetcher, testBreakerConfig())

	for i := 0; i < 3; i++ {
		_, _ = cbc.FetchCompanies(context.Background(), nil)
	}
	if cbc.State() != "open" {
		t.Fatalf("Expected open circuit, got %s", cbc.State())
	}

	time.Sleep(80 * time.Millisecond)
	if cbc.State() != "half-open" {
		t.Fatalf("Expected half-open after timeout, got %s", cbc.State())
	}

	fetcher.setErr(nil)
	ds, err := cbc.FetchCompanies(context.Background(), nil)
	if err != nil {
		t.Fatalf("half-open call failed: %v", err)
	}
	if ds.Len() != 1 {
		t.Errorf("Expected half-open dataset to pass through, got %d companies", ds.Len())
	}
	if cbc.State() != "closed" {
		t.Errorf("Expected closed after successful half-open call, got %s", cbc.State())
	}
}

// TestCircuitBreaker_CanceledRequestsDoNotTrip verifies caller cancellation
// is not held against the upstream
func TestCircuitBreaker_CanceledRequestsDoNotTrip(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setErr(&UpstreamError{Err: context.Canceled})
	cbc := NewCircuitBreaker(fetcher, testBreakerConfig())

	for i := 0; i < 5; i++ {
		_, _ = cbc.FetchCompanies(context.Background(), nil)
	}
	if cbc.State() != "closed" {
		t.Errorf("Expected closed circuit, got %s", cbc.State())
	}
}

func TestStateConversions(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		str   string
		num   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
		{gobreaker.State(99), "unknown", -1},
	}
	for _, tt := range tests {
		if got := stateToString(tt.state); got != tt.str {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.str)
		}
		if got := stateToFloat(tt.state); got != tt.num {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.num)
		}
	}
}

func TestNewCircuitBreakerClientName(t *testing.T) {
	cbc := NewCircuitBreakerClient(testUpstreamConfig("http://127.0.0.1:1/browse"))
	if cbc.Name() != BreakerName {
		t.Errorf("Name() = %q, want %q", cbc.Name(), BreakerName)
	}
}
