// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/companydesk/internal/config"
	"github.com/tomtom215/companydesk/internal/logging"
	"github.com/tomtom215/companydesk/internal/metrics"
	"github.com/tomtom215/companydesk/internal/models"
)

// maxErrorBodySize limits how much of an error response is kept for diagnostics
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// Fetcher retrieves the full company dataset for one set of base parameters.
//
// Implemented by Client and CircuitBreakerClient; tests substitute fakes.
type Fetcher interface {
	FetchCompanies(ctx context.Context, params map[string]interface{}) (*models.Dataset, error)
}

// Client posts browse queries to the upstream API.
type Client struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client for the configured browse endpoint.
// A RateLimit of 0 disables outbound throttling.
func NewClient(cfg *config.UpstreamConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}
	return &Client{
		url:     cfg.URL,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

// FetchCompanies POSTs params as a JSON object and decodes the dataset.
//
// Every failure is returned as *UpstreamError. Missing arrays in the
// response are normalized to empty slices.
func (c *Client) FetchCompanies(ctx context.Context, params map[string]interface{}) (*models.Dataset, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.UpstreamErrors.WithLabelValues("throttled").Inc()
			return nil, &UpstreamError{Err: fmt.Errorf("rate limiter wait: %w", err)}
		}
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode browse parameters: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := logging.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(time.Since(start), "transport")
		return nil, &UpstreamError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordUpstreamRequest(time.Since(start), metrics.StatusClass(resp.StatusCode))
		errBody := readBodyForError(resp.Body)
		logging.CtxWarn(ctx).
			Int("status", resp.StatusCode).
			Int("body_bytes", len(errBody)).
			Msg("Upstream returned error status")
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(errBody),
		}
	}

	var ds models.Dataset
	if err := json.NewDecoder(resp.Body).Decode(&ds); err != nil {
		metrics.RecordUpstreamRequest(time.Since(start), "decode")
		return nil, &UpstreamError{Err: fmt.Errorf("failed to decode browse response: %w", err)}
	}
	elapsed := time.Since(start)
	metrics.RecordUpstreamRequest(elapsed, "")

	if ds.Companies == nil {
		ds.Companies = []models.Company{}
	}
	if ds.Properties == nil {
		ds.Properties = []models.Property{}
	}
	if ds.PropertyValues == nil {
		ds.PropertyValues = []models.PropertyValue{}
	}
	metrics.UpstreamDatasetSize.Observe(float64(len(ds.Companies)))

	logging.CtxDebug(ctx).
		Int("companies", len(ds.Companies)).
		Dur("duration", elapsed).
		Msg("Fetched companies from upstream")

	return &ds, nil
}

// statusText extracts the reason phrase from resp.Status ("404 Not Found"),
// falling back to the standard text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
