// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package query

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/tomtom215/companydesk/internal/models"
)

// FilterNames lists the predicate keys accepted in CompanyFilters.
var FilterNames = []string{
	"fileAs", "legalName", "legalCode", "kpp", "phone", "email", "city", "country", "industries",
	"createdFrom", "createdTo", "modifiedFrom", "modifiedTo",
	"applyVAT", "isPrivate", "hasEmail", "hasPhone", "hasWebPage",
}

type predicate func(c *models.Company) bool

// Filter keeps the companies satisfying every predicate set in f.
// A nil or empty filter returns items unchanged.
func Filter(items []*models.Company, f *models.CompanyFilters) []*models.Company {
	preds := compileFilters(f)
	if len(preds) == 0 {
		return items
	}

	out := make([]*models.Company, 0)
next:
	for _, c := range items {
		for _, p := range preds {
			if !p(c) {
				continue next
			}
		}
		out = append(out, c)
	}
	return out
}

func compileFilters(f *models.CompanyFilters) []predicate {
	if f.IsEmpty() {
		return nil
	}

	folder := cases.Fold()
	var preds []predicate

	addText := func(want *string, sources ...func(c *models.Company) *string) {
		if want == nil || *want == "" {
			return
		}
		needle := folder.String(*want)
		preds = append(preds, func(c *models.Company) bool {
			for _, src := range sources {
				if v := src(c); v != nil && *v != "" && strings.Contains(folder.String(*v), needle) {
					return true
				}
			}
			return false
		})
	}
	ptr := func(s string) *string { return &s }

	addText(f.FileAs, func(c *models.Company) *string { return ptr(c.FileAs) })
	addText(f.LegalName, func(c *models.Company) *string { return ptr(c.LegalName) })
	addText(f.LegalCode, func(c *models.Company) *string { return c.LegalCode })
	addText(f.KPP, func(c *models.Company) *string { return c.KPP })
	addText(f.Phone,
		func(c *models.Company) *string { return c.Phone1 },
		func(c *models.Company) *string { return c.Phone2 })
	addText(f.Email, func(c *models.Company) *string { return c.Email })
	addText(f.City, func(c *models.Company) *string { return c.City })
	addText(f.Country, func(c *models.Company) *string { return c.Country })
	addText(f.Industries, func(c *models.Company) *string { return ptr(c.Industries) })

	addFlag := func(want *bool, flag func(c *models.Company) bool) {
		if want == nil {
			return
		}
		w := *want
		preds = append(preds, func(c *models.Company) bool { return flag(c) == w })
	}

	addFlag(f.ApplyVAT, func(c *models.Company) bool { return c.ApplyVAT })
	addFlag(f.IsPrivate, func(c *models.Company) bool { return c.Private })
	addFlag(f.HasEmail, func(c *models.Company) bool { return present(c.Email) })
	addFlag(f.HasPhone, func(c *models.Company) bool { return present(c.Phone1) || present(c.Phone2) })
	addFlag(f.HasWebPage, func(c *models.Company) bool { return present(c.WebPage) })

	addRange := func(from, to *string, field func(c *models.Company) string) {
		lower, hasLower, okLower := bound(from)
		upper, hasUpper, okUpper := bound(to)
		if !hasLower && !hasUpper {
			return
		}
		if !okLower || !okUpper {
			preds = append(preds, func(*models.Company) bool { return false })
			return
		}
		preds = append(preds, func(c *models.Company) bool {
			t, ok := ParseDate(field(c))
			if !ok {
				return false
			}
			if hasLower && t.Before(lower) {
				return false
			}
			if hasUpper && t.After(upper) {
				return false
			}
			return true
		})
	}

	addRange(f.CreatedFrom, f.CreatedTo, func(c *models.Company) string { return c.Created })
	addRange(f.ModifiedFrom, f.ModifiedTo, func(c *models.Company) string { return c.Modified })

	return preds
}

// bound parses an optional date bound. set is false for nil or blank
// values; ok is false when a value is set but unparseable.
func bound(s *string) (t time.Time, set, ok bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return time.Time{}, false, true
	}
	t, ok = ParseDate(*s)
	return t, true, ok
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
