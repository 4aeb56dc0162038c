// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/companydesk/internal/logging"
	"github.com/tomtom215/companydesk/internal/upstream"
)

// Client-facing messages.
const (
	msgInternalError    = "Internal server error"
	msgMethodNotAllowed = "Method not allowed. Use POST."
	msgInvalidJSON      = "Invalid JSON body"
	msgUpstreamOpen     = "Upstream temporarily unavailable, retry later"
	msgUpstreamFailed   = "External API error: upstream unreachable"
	msgRequestCanceled  = "Request canceled"
)

// statusClientClosedRequest is the de facto status for a request the client
// abandoned before a response was produced.
const statusClientClosedRequest = 499

// errorResponse is the status, code and message returned for a service error.
type errorResponse struct {
	status  int
	code    string
	message string
}

// classifyError maps an error from the browse service to its HTTP response.
//
//   - *upstream.UpstreamError with a status: that status, EXTERNAL_SERVICE_FAILED
//   - *upstream.UpstreamError without a status (transport, decode): 502 with
//     a fixed message; the cause is only logged
//   - upstream.ErrCircuitOpen: 503 SERVICE_UNAVAILABLE
//   - context.Canceled: 499
//   - anything else: 500 with a generic message
func classifyError(err error) errorResponse {
	if errors.Is(err, upstream.ErrCircuitOpen) {
		return errorResponse{http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgUpstreamOpen}
	}

	var upErr *upstream.UpstreamError
	if errors.As(err, &upErr) {
		if errors.Is(upErr, context.Canceled) {
			return errorResponse{statusClientClosedRequest, ErrCodeBadRequest, msgRequestCanceled}
		}
		if upErr.StatusCode == 0 {
			return errorResponse{http.StatusBadGateway, ErrCodeExternalServiceFail, msgUpstreamFailed}
		}
		return errorResponse{upErr.HTTPStatus(), ErrCodeExternalServiceFail, upErr.Error()}
	}

	if errors.Is(err, context.Canceled) {
		return errorResponse{statusClientClosedRequest, ErrCodeBadRequest, msgRequestCanceled}
	}

	return errorResponse{http.StatusInternalServerError, ErrCodeInternalError, msgInternalError}
}

// respondServiceError logs err and writes the mapped error envelope.
// Server-side failures are logged at error level; the message sent to the
// client never includes internal details.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	resp := classifyError(err)

	event := logging.CtxWarn(r.Context())
	if resp.status >= http.StatusInternalServerError && resp.code == ErrCodeInternalError {
		event = logging.CtxErr(r.Context(), err)
	} else {
		event = event.Err(err)
	}
	event.Int("status", resp.status).Str("code", resp.code).Msg("Browse request failed")

	NewResponseWriter(w, r).Error(resp.status, resp.code, resp.message)
}
