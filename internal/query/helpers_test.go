// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package query

import (
	"golang.org/x/text/language"

	"github.com/tomtom215/companydesk/internal/models"
)

func sp(s string) *string { return &s }
func ip(n int64) *int64   { return &n }
func bp(b bool) *bool     { return &b }

// fixtureDataset returns five companies covering nulls, mixed case and dates.
func fixtureDataset() *models.Dataset {
	return &models.Dataset{
		Companies: []models.Company{
			{Id: 1, FileAs: "Acme Corp", LegalName: "ACME LLC", LegalCode: sp("7701001"), Email: sp("sales@acme.test"),
				Phone1: sp("+7 495 000-00-01"), City: sp("Moscow"), CompanySizeId: ip(3),
				Created: "2024-01-10T09:00:00", Modified: "2024-03-01T12:00:00Z", ApplyVAT: true},
			{Id: 2, FileAs: "Globex", LegalName: "Globex JSC", Email: nil, Phone2: sp("+7 812 111-11-11"),
				City: sp("Saint Petersburg"), CompanySizeId: nil,
				Created: "2024-02-15 10:30:00", Modified: "2024-02-16", Private: true},
			{Id: 3, FileAs: "Initech", LegalName: "Initech Holdings", LegalCode: sp("5009"), Email: sp("  "),
				CompanySizeId: ip(1), Created: "2023-12-31T23:59:59.1234567", Modified: "not a date",
				WebPage: sp("https://initech.test")},
			{Id: 4, FileAs: "Umbrella", LegalName: "Umbrella Acme Division", Email: sp("info@umbrella.test"),
				CompanySizeId: ip(10), Created: "2024-01-20T00:00:00+03:00", Modified: "2024-04-01", Industries: "Pharma, Biotech"},
			{Id: 5, FileAs: "Hooli", LegalName: "Hooli Inc", CompanySizeId: ip(2), Created: "", Modified: "2024-05-05",
				Country: sp("USA"), ApplyVAT: true},
		},
		Properties:     []models.Property{{Id: 1, Name: "Segment"}},
		PropertyValues: []models.PropertyValue{{PropertyId: 1, DocumentId: 1, Value: "SMB"}},
	}
}

func pointers(ds *models.Dataset) []*models.Company {
	out := make([]*models.Company, ds.Len())
	for i := range out {
		out[i] = &ds.Companies[i]
	}
	return out
}

func ids(items []*models.Company) []int64 {
	out := make([]int64, len(items))
	for i, c := range items {
		out[i] = c.Id
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newTestPipeline() *Pipeline {
	return New(Options{DefaultPageSize: 50, MaxPageSize: 1000, Collation: language.Russian})
}
