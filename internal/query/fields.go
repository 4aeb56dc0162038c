// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package query

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/companydesk/internal/models"
)

// Kind is the dynamic type of a field Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a company field read through the accessor table.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

// Text returns the textual form used for substring matching.
// ok is false for null values.
func (v Value) Text() (s string, ok bool) {
	switch v.Kind {
	case KindString:
		return v.Str, true
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64), true
	case KindBool:
		return strconv.FormatBool(v.Bool), true
	default:
		return "", false
	}
}

// Accessor extracts one field from a company.
type Accessor func(c *models.Company) Value

func str(s string) Value { return Value{Kind: KindString, Str: s} }

func optStr(s *string) Value {
	if s == nil {
		return Value{}
	}
	return Value{Kind: KindString, Str: *s}
}

func num(n int64) Value { return Value{Kind: KindNumber, Num: float64(n)} }

func optNum(n *int64) Value {
	if n == nil {
		return Value{}
	}
	return num(*n)
}

func boolean(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Fields maps upstream field names to typed accessors. A name missing from
// the table never matches a search and leaves sort order unchanged.
var Fields = map[string]Accessor{
	"Id":    func(c *models.Company) Value { return num(c.Id) },
	"Class": func(c *models.Company) Value { return num(c.Class) },
	"State": func(c *models.Company) Value { return num(c.State) },
	"Flag":  func(c *models.Company) Value { return num(c.Flag) },

	"FileAs":         func(c *models.Company) Value { return str(c.FileAs) },
	"FoundationDate": func(c *models.Company) Value { return optStr(c.FoundationDate) },
	"LegalName":      func(c *models.Company) Value { return str(c.LegalName) },
	"KPP":            func(c *models.Company) Value { return optStr(c.KPP) },
	"LegalCode":      func(c *models.Company) Value { return optStr(c.LegalCode) },

	"BankAccountId":        func(c *models.Company) Value { return optNum(c.BankAccountId) },
	"ExecutiveEmployeeId":  func(c *models.Company) Value { return optNum(c.ExecutiveEmployeeId) },
	"AccountantEmployeeId": func(c *models.Company) Value { return optNum(c.AccountantEmployeeId) },
	"ManagerEmployeeId":    func(c *models.Company) Value { return optNum(c.ManagerEmployeeId) },
	"CompanySizeId":        func(c *models.Company) Value { return optNum(c.CompanySizeId) },
	"CompanyTurnoverId":    func(c *models.Company) Value { return optNum(c.CompanyTurnoverId) },
	"CompanyStatusId":      func(c *models.Company) Value { return optNum(c.CompanyStatusId) },

	"Comments":           func(c *models.Company) Value { return optStr(c.Comments) },
	"DdmOperatorCode":    func(c *models.Company) Value { return optStr(c.DdmOperatorCode) },
	"DdmParticipantCode": func(c *models.Company) Value { return optStr(c.DdmParticipantCode) },

	"Created":    func(c *models.Company) Value { return str(c.Created) },
	"CreatedBy":  func(c *models.Company) Value { return num(c.CreatedBy) },
	"Modified":   func(c *models.Company) Value { return str(c.Modified) },
	"ModifiedBy": func(c *models.Company) Value { return num(c.ModifiedBy) },
	"Timestamp":  func(c *models.Company) Value { return str(c.Timestamp) },

	"ApplyVAT": func(c *models.Company) Value { return boolean(c.ApplyVAT) },
	"Number":   func(c *models.Company) Value { return optStr(c.Number) },

	"Phone1":      func(c *models.Company) Value { return optStr(c.Phone1) },
	"Phone2":      func(c *models.Company) Value { return optStr(c.Phone2) },
	"Street":      func(c *models.Company) Value { return optStr(c.Street) },
	"Street2":     func(c *models.Company) Value { return optStr(c.Street2) },
	"Country":     func(c *models.Company) Value { return optStr(c.Country) },
	"Country2":    func(c *models.Company) Value { return optStr(c.Country2) },
	"Region":      func(c *models.Company) Value { return optStr(c.Region) },
	"Region2":     func(c *models.Company) Value { return optStr(c.Region2) },
	"City":        func(c *models.Company) Value { return optStr(c.City) },
	"City2":       func(c *models.Company) Value { return optStr(c.City2) },
	"PostalCode":  func(c *models.Company) Value { return optStr(c.PostalCode) },
	"PostalCode2": func(c *models.Company) Value { return optStr(c.PostalCode2) },
	"Email":       func(c *models.Company) Value { return optStr(c.Email) },
	"WebPage":     func(c *models.Company) Value { return optStr(c.WebPage) },
	"Private":     func(c *models.Company) Value { return boolean(c.Private) },

	"#PhoneType#1":  func(c *models.Company) Value { return optStr(c.PhoneType1) },
	"#PhoneType#2":  func(c *models.Company) Value { return optStr(c.PhoneType2) },
	"#PhoneType#3":  func(c *models.Company) Value { return optStr(c.PhoneType3) },
	"#PhoneType#4":  func(c *models.Company) Value { return optStr(c.PhoneType4) },
	"#PhoneType#5":  func(c *models.Company) Value { return optStr(c.PhoneType5) },
	"#PhoneType#6":  func(c *models.Company) Value { return optStr(c.PhoneType6) },
	"#PhoneType#7":  func(c *models.Company) Value { return optStr(c.PhoneType7) },
	"#PhoneType#8":  func(c *models.Company) Value { return optStr(c.PhoneType8) },
	"#PhoneType#9":  func(c *models.Company) Value { return optStr(c.PhoneType9) },
	"#PhoneType#10": func(c *models.Company) Value { return optStr(c.PhoneType10) },
	"#PhoneType#11": func(c *models.Company) Value { return optStr(c.PhoneType11) },

	"ParentCompanyId": func(c *models.Company) Value { return optNum(c.ParentCompanyId) },
	"Categories":      func(c *models.Company) Value { return str(c.Categories) },
	"Industries":      func(c *models.Company) Value { return str(c.Industries) },
	"Bin":             func(c *models.Company) Value { return optStr(c.Bin) },
}

// dateFields hold upstream timestamps and are ordered by instant.
var dateFields = map[string]bool{
	"Created":        true,
	"Modified":       true,
	"FoundationDate": true,
	"Timestamp":      true,
}

// foldedNames resolves field names case-insensitively ("fileAs" -> "FileAs").
var foldedNames = func() map[string]string {
	m := make(map[string]string, len(Fields))
	for name := range Fields {
		m[strings.ToLower(name)] = name
	}
	return m
}()

// CanonicalField returns the accessor table spelling of name, matching
// case-insensitively. ok is false for unknown fields.
func CanonicalField(name string) (string, bool) {
	if _, ok := Fields[name]; ok {
		return name, true
	}
	canonical, ok := foldedNames[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// FieldNames returns every accessible field in sorted order.
func FieldNames() []string {
	names := make([]string, 0, len(Fields))
	for name := range Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// dateLayouts are tried in order. Layouts without a zone parse as UTC and
// accept an optional fractional second after the seconds field.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an upstream or client supplied date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
