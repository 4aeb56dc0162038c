// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package api

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/companydesk/internal/cache"
	"github.com/tomtom215/companydesk/internal/models"
	"github.com/tomtom215/companydesk/internal/validation"
)

// maxRequestBodySize caps POST bodies. Browse requests are small objects.
const maxRequestBodySize = 1 << 20

// isoMillis formats instants like JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// errEmptyBody is returned for a POST without a body.
var errEmptyBody = errors.New("request body is empty")

// browseInput is a decoded and validated browse request.
type browseInput struct {
	req  models.BrowseRequest
	base map[string]interface{}
}

// decodeBrowseInput reads the request body once and decodes it twice: into
// a generic map, whose non-view keys become the upstream parameters and
// cache key, and into models.BrowseRequest for the typed view parameters.
// On failure the error response has already been written.
func decodeBrowseInput(w http.ResponseWriter, r *http.Request) (*browseInput, bool) {
	rw := NewResponseWriter(w, r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rw.Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest,
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		rw.BadRequest("Failed to read request body")
		return nil, false
	}
	if len(body) == 0 {
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeBadRequest, msgInvalidJSON, errEmptyBody.Error())
		return nil, false
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		rw.BadRequest(msgInvalidJSON)
		return nil, false
	}

	in := &browseInput{base: cache.StripTransient(raw)}
	if err := json.Unmarshal(body, &in.req); err != nil {
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeBadRequest, msgInvalidJSON, typeErrorDetails(err))
		return nil, false
	}

	if verr := validation.ValidateStruct(&in.req); verr != nil {
		rw.ValidationError(verr)
		return nil, false
	}
	return in, true
}

// typeErrorDetails describes a field whose JSON type does not match.
func typeErrorDetails(err error) interface{} {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return map[string]interface{}{
			"field":    typeErr.Field,
			"expected": typeErr.Type.String(),
			"got":      typeErr.Value,
		}
	}
	return nil
}

// cacheControl returns a private max-age directive that lasts until
// expiresAt, rounded down to whole seconds.
func cacheControl(now, expiresAt time.Time) string {
	secs := int64(expiresAt.Sub(now) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return "private, max-age=" + strconv.FormatInt(secs, 10)
}

// formatMillis renders a duration as whole milliseconds plus "ms".
func formatMillis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

// formatMillisFine renders a duration in milliseconds with two decimals.
func formatMillisFine(d time.Duration) string {
	return strconv.FormatFloat(millis(d), 'f', 2, 64) + "ms"
}

// millis converts d to fractional milliseconds rounded to two decimals.
func millis(d time.Duration) float64 {
	return math.Round(float64(d.Microseconds())/10) / 100
}
