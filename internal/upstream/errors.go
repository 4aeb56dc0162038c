// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCircuitOpen is returned when the breaker rejects a call without
// contacting the upstream.
var ErrCircuitOpen = errors.New("upstream circuit breaker is open")

// UpstreamError describes a failed call to the browse API.
//
// StatusCode is the upstream HTTP status, or 0 when no usable response was
// received (transport failure, throttle wait aborted, undecodable body). In
// that case Err holds the cause.
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("External API error: %v", e.Err)
	}
	return fmt.Sprintf("External API error: %d %s", e.StatusCode, e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether the upstream rejected the request itself
// (4xx) as opposed to failing.
func (e *UpstreamError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// HTTPStatus returns the status the proxy should answer with: the upstream
// code when there is one, 502 otherwise.
func (e *UpstreamError) HTTPStatus() int {
	if e.StatusCode == 0 {
		return http.StatusBadGateway
	}
	return e.StatusCode
}

// isClientError reports whether err wraps an upstream 4xx.
func isClientError(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr) && upErr.IsClientError()
}
