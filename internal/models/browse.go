// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package models

// Sort directions accepted in BrowseRequest.SortDirection.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// BrowseRequest is the body of POST /companies.
//
// The first group of fields are the base parameters: they are forwarded to the
// upstream API and are the only input to the cache key. The second group are
// per-call view parameters applied in memory after the dataset is obtained.
// Two requests that differ only in view parameters share one cache entry.
//
// Validation tags are enforced by internal/validation before the request
// reaches the browse service.
type BrowseRequest struct {
	SqlUserName           string  `json:"SqlUserName"` //nolint:revive // upstream key
	SqlPassword           string  `json:"SqlPassword"` //nolint:revive // upstream key
	Server                *string `json:"Server"`
	Database              *string `json:"Database"`
	DbUserName            *string `json:"DbUserName"`
	StateSelector         int     `json:"StateSelector"`
	EmployeeID            *int64  `json:"EmployeeID"`
	ContractSelector      int     `json:"ContractSelector"`
	CompanyStatusSelector int     `json:"CompanyStatusSelector"`
	CompanyStatusID       *int64  `json:"CompanyStatusID"`
	View                  int     `json:"View"`
	ShowMine              bool    `json:"ShowMine"`
	ShowOnlyOpen          bool    `json:"ShowOnlyOpen"`

	Page          int             `json:"Page,omitempty" validate:"omitempty,min=1,max=1000000"`
	PageSize      int             `json:"PageSize,omitempty" validate:"omitempty,min=1,max=10000"`
	SortBy        string          `json:"SortBy,omitempty" validate:"omitempty,max=64"`
	SortDirection string          `json:"SortDirection,omitempty" validate:"omitempty,sortdir"`
	Search        string          `json:"Search,omitempty" validate:"max=500"`
	SearchFields  []string        `json:"SearchFields,omitempty" validate:"max=16,dive,max=64"`
	Filters       *CompanyFilters `json:"Filters,omitempty"`
}

// CompanyFilters holds structured predicates. A nil field imposes no
// constraint; every non-nil field must hold for a company to pass.
//
// String predicates are case-insensitive substring matches, boolean
// predicates compare against a derived flag, and the date bounds are
// inclusive instants.
type CompanyFilters struct {
	FileAs     *string `json:"fileAs,omitempty"`
	LegalName  *string `json:"legalName,omitempty"`
	LegalCode  *string `json:"legalCode,omitempty"`
	KPP        *string `json:"kpp,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	City       *string `json:"city,omitempty"`
	Country    *string `json:"country,omitempty"`
	Industries *string `json:"industries,omitempty"`

	CreatedFrom  *string `json:"createdFrom,omitempty"`
	CreatedTo    *string `json:"createdTo,omitempty"`
	ModifiedFrom *string `json:"modifiedFrom,omitempty"`
	ModifiedTo   *string `json:"modifiedTo,omitempty"`

	ApplyVAT   *bool `json:"applyVAT,omitempty"`
	IsPrivate  *bool `json:"isPrivate,omitempty"`
	HasEmail   *bool `json:"hasEmail,omitempty"`
	HasPhone   *bool `json:"hasPhone,omitempty"`
	HasWebPage *bool `json:"hasWebPage,omitempty"`
}

// IsEmpty reports whether no predicate is set.
func (f *CompanyFilters) IsEmpty() bool {
	if f == nil {
		return true
	}
	return *f == CompanyFilters{}
}
