// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/text/language"

	"github.com/tomtom215/companydesk/internal/cache"
	"github.com/tomtom215/companydesk/internal/metrics"
	"github.com/tomtom215/companydesk/internal/models"
	"github.com/tomtom215/companydesk/internal/query"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeFetcher serves a generated dataset, optionally blocking until release
// is closed, and counts calls.
type fakeFetcher struct {
	calls   atomic.Int32
	size    int
	err     error
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (f *fakeFetcher) FetchCompanies(ctx context.Context, _ map[string]interface{}) (*models.Dataset, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.once.Do(func() { close(f.started) })
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return makeDataset(f.size), nil
}

func makeDataset(n int) *models.Dataset {
	ds := &models.Dataset{
		Companies:      make([]models.Company, n),
		Properties:     []models.Property{},
		PropertyValues: []models.PropertyValue{},
	}
	for i := range ds.Companies {
		ds.Companies[i] = models.Company{
			Id:        int64(i + 1),
			FileAs:    fmt.Sprintf("Company %03d", i+1),
			LegalName: fmt.Sprintf("Legal %03d", i+1),
		}
	}
	return ds
}

func newTestService(t *testing.T, f *fakeFetcher, dedupe bool) (*Service, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := cache.New(5*time.Minute, cache.WithClock(clk.Now), cache.WithName("browse-test"))
	p := query.New(query.Options{DefaultPageSize: 50, MaxPageSize: 1000, Collation: language.English})
	return NewService(c, f, p, Options{TTL: 5 * time.Minute, DedupeInflight: dedupe}), clk
}

func base(user string) map[string]interface{} {
	return map[string]interface{}{"SqlUserName": user, "View": 1, "StateSelector": 0}
}

// TestBrowseHitAndMiss runs the full miss -> hit -> expiry cycle over a
// 100 record dataset.
func TestBrowseHitAndMiss(t *testing.T) {
	f := &fakeFetcher{size: 100}
	svc, clk := newTestService(t, f, true)
	ctx := context.Background()

	first, err := svc.Browse(ctx, base("u"), query.Params{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if first.CacheHit {
		t.Error("Expected first call to miss")
	}
	if len(first.Result.Items) != 10 || first.Result.Pagination.TotalPages != 10 {
		t.Errorf("page = %d items / %d pages, want 10/10", len(first.Result.Items), first.Result.Pagination.TotalPages)
	}
	if want := clk.Now().Add(5 * time.Minute); !first.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", first.ExpiresAt, want)
	}

	clk.Advance(time.Minute)
	second, err := svc.Browse(ctx, base("u"), query.Params{Page: 3, PageSize: 10, Search: "company 02"})
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if !second.CacheHit {
		t.Error("Expected second call with only view changes to hit")
	}
	if second.Key != first.Key || !second.ExpiresAt.Equal(first.ExpiresAt) {
		t.Error("Expected hit to report the original key and expiry")
	}
	if second.Result.TotalAfterFilter != 10 {
		t.Errorf("TotalAfterFilter = %d, want 10 (Company 020-029)", second.Result.TotalAfterFilter)
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("fetcher calls = %d, want 1", got)
	}

	if _, err := svc.Browse(ctx, base("other"), query.Params{}); err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if got := f.calls.Load(); got != 2 {
		t.Errorf("fetcher calls = %d, want 2 after a different base", got)
	}

	clk.Advance(5 * time.Minute)
	third, err := svc.Browse(ctx, base("u"), query.Params{})
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if third.CacheHit {
		t.Error("Expected miss after TTL elapsed")
	}
	if got := f.calls.Load(); got != 3 {
		t.Errorf("fetcher calls = %d, want 3", got)
	}
}

func TestBrowseErrorsAreNotCached(t *testing.T) {
	upstreamErr := errors.New("upstream down")
	f := &fakeFetcher{err: upstreamErr}
	svc, _ := newTestService(t, f, true)

	for i := 0; i < 2; i++ {
		_, err := svc.Browse(context.Background(), base("u"), query.Params{})
		if !errors.Is(err, upstreamErr) {
			t.Fatalf("call %d: error = %v, want upstream error unchanged", i, err)
		}
	}
	if got := f.calls.Load(); got != 2 {
		t.Errorf("fetcher calls = %d, want 2 (errors never cached)", got)
	}
	if stats := svc.CacheStats(); stats.Total != 0 {
		t.Errorf("cache holds %d entries after errors, want 0", stats.Total)
	}
}

func TestBrowseDeduplicatesConcurrentMisses(t *testing.T) {
	f := &fakeFetcher{size: 5, started: make(chan struct{}), release: make(chan struct{})}
	svc, _ := newTestService(t, f, true)
	sharedBefore := testutil.ToFloat64(metrics.UpstreamSharedFetches)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := svc.Browse(context.Background(), base("u"), query.Params{})
			if err == nil && out.Dataset.Len() != 5 {
				err = fmt.Errorf("got %d companies", out.Dataset.Len())
			}
			errs <- err
		}()
	}

	<-f.started
	time.Sleep(50 * time.Millisecond)
	close(f.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Browse() error = %v", err)
		}
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("fetcher calls = %d, want 1", got)
	}
	if after := testutil.ToFloat64(metrics.UpstreamSharedFetches); after <= sharedBefore {
		t.Error("Expected shared fetch counter to increase")
	}
}

func TestBrowseWaiterHonoursCancellation(t *testing.T) {
	f := &fakeFetcher{size: 5, started: make(chan struct{}), release: make(chan struct{})}
	svc, _ := newTestService(t, f, true)

	leaderDone := make(chan error, 1)
	go func() {
		_, err := svc.Browse(context.Background(), base("u"), query.Params{})
		leaderDone <- err
	}()
	<-f.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	waiterDone := make(chan error, 1)
	go func() {
		_, err := svc.Browse(ctx, base("u"), query.Params{})
		waiterDone <- err
	}()

	select {
	case err := <-waiterDone:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("waiter error = %v, want context.DeadlineExceeded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiter did not return after its context ended")
	}

	close(f.release)
	if err := <-leaderDone; err != nil {
		t.Fatalf("leader Browse() error = %v", err)
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("fetcher calls = %d, want 1", got)
	}
	if out, err := svc.Browse(context.Background(), base("u"), query.Params{}); err != nil || !out.CacheHit {
		t.Errorf("Expected the shared fetch to populate the cache, got err %v", err)
	}
}

func TestBrowseWithoutDeduplication(t *testing.T) {
	f := &fakeFetcher{size: 3}
	svc, _ := newTestService(t, f, false)

	out, err := svc.Browse(context.Background(), base("u"), query.Params{})
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if out.CacheHit || out.Dataset.Len() != 3 {
		t.Errorf("outcome = hit %v, %d companies", out.CacheHit, out.Dataset.Len())
	}
	if out, _ := svc.Browse(context.Background(), base("u"), query.Params{}); !out.CacheHit {
		t.Error("Expected second call to hit")
	}
}

func TestBrowseRejectsUnencodableBase(t *testing.T) {
	svc, _ := newTestService(t, &fakeFetcher{}, true)
	_, err := svc.Browse(context.Background(), map[string]interface{}{"bad": make(chan int)}, query.Params{})
	if err == nil {
		t.Fatal("Expected key build error")
	}
}

func TestExport(t *testing.T) {
	f := &fakeFetcher{size: 120}
	svc, _ := newTestService(t, f, true)

	out, err := svc.Export(context.Background(), base("u"), query.Params{SortBy: "Id", SortDirection: "desc", PageSize: 10})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(out.Result.Items) != 120 {
		t.Fatalf("exported %d companies, want 120", len(out.Result.Items))
	}
	if out.Result.Items[0].Id != 120 {
		t.Errorf("first exported id = %d, want 120", out.Result.Items[0].Id)
	}
}

func TestCacheStatsAndClear(t *testing.T) {
	f := &fakeFetcher{size: 2}
	svc, clk := newTestService(t, f, true)
	ctx := context.Background()

	if _, err := svc.Browse(ctx, base("a"), query.Params{}); err != nil {
		t.Fatal(err)
	}
	clk.Advance(3 * time.Minute)
	if _, err := svc.Browse(ctx, base("b"), query.Params{}); err != nil {
		t.Fatal(err)
	}
	clk.Advance(3 * time.Minute)

	stats := svc.CacheStats()
	want := models.CacheStatsBody{Total: 2, Active: 1, Expired: 1, CleanedUpExpired: 1}
	if stats != want {
		t.Errorf("CacheStats() = %+v, want %+v", stats, want)
	}

	stats = svc.CacheStats()
	want = models.CacheStatsBody{Total: 1, Active: 1}
	if stats != want {
		t.Errorf("CacheStats() after sweep = %+v, want %+v", stats, want)
	}

	if n := svc.CleanupCache(); n != 0 {
		t.Errorf("CleanupCache() = %d, want 0", n)
	}
	if n := svc.ClearCache(); n != 1 {
		t.Errorf("ClearCache() = %d, want 1", n)
	}
}
