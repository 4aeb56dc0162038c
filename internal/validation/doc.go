// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is configured once with:
//   - WithRequiredStructEnabled (v11 behaviour)
//   - JSON field names in error reports ("PageSize", not the Go field path)
//   - the custom "sortdir" tag: "asc" or "desc", case-insensitive
//
// # Usage
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // respond 400 with apiErr.Code ("VALIDATION_ERROR"), apiErr.Message, apiErr.Details
//	}
//
// # Error Format
//
// A single failure carries the field, tag and rejected value in Details:
//
//	{"code": "VALIDATION_ERROR", "message": "PageSize must be at most 10000",
//	 "details": {"field": "PageSize", "tag": "max", "value": 20000}}
//
// Several failures are joined into one message and listed under
// Details["fields"].
package validation
