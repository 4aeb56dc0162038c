// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package models

// Company is a single record from the upstream company browse endpoint.
//
// Field names and JSON keys match the upstream schema exactly so that a record
// round-trips through the proxy unchanged. Nullable upstream columns are
// pointers and are serialized as JSON null (no omitempty) to keep the shape
// clients already depend on.
//
// Date-valued fields (Created, Modified, Timestamp, FoundationDate) are kept
// as the upstream strings; the query pipeline parses them on demand.
type Company struct {
	Id    int64 `json:"Id"` //nolint:revive // upstream key
	Class int64 `json:"Class"`
	State int64 `json:"State"`
	Flag  int64 `json:"Flag"`

	FileAs         string  `json:"FileAs"`
	FoundationDate *string `json:"FoundationDate"`
	LegalName      string  `json:"LegalName"`
	KPP            *string `json:"KPP"`
	LegalCode      *string `json:"LegalCode"`

	BankAccountId        *int64 `json:"BankAccountId"`        //nolint:revive // upstream key
	ExecutiveEmployeeId  *int64 `json:"ExecutiveEmployeeId"`  //nolint:revive // upstream key
	AccountantEmployeeId *int64 `json:"AccountantEmployeeId"` //nolint:revive // upstream key
	ManagerEmployeeId    *int64 `json:"ManagerEmployeeId"`    //nolint:revive // upstream key
	CompanySizeId        *int64 `json:"CompanySizeId"`        //nolint:revive // upstream key
	CompanyTurnoverId    *int64 `json:"CompanyTurnoverId"`    //nolint:revive // upstream key
	CompanyStatusId      *int64 `json:"CompanyStatusId"`      //nolint:revive // upstream key

	Comments           *string `json:"Comments"`
	DdmOperatorCode    *string `json:"DdmOperatorCode"`
	DdmParticipantCode *string `json:"DdmParticipantCode"`

	Created    string `json:"Created"`
	CreatedBy  int64  `json:"CreatedBy"`
	Modified   string `json:"Modified"`
	ModifiedBy int64  `json:"ModifiedBy"`
	Timestamp  string `json:"Timestamp"`

	ApplyVAT bool    `json:"ApplyVAT"`
	Number   *string `json:"Number"`

	Phone1      *string `json:"Phone1"`
	Phone2      *string `json:"Phone2"`
	Street      *string `json:"Street"`
	Street2     *string `json:"Street2"`
	Country     *string `json:"Country"`
	Country2    *string `json:"Country2"`
	Region      *string `json:"Region"`
	Region2     *string `json:"Region2"`
	City        *string `json:"City"`
	City2       *string `json:"City2"`
	PostalCode  *string `json:"PostalCode"`
	PostalCode2 *string `json:"PostalCode2"`
	Email       *string `json:"Email"`
	WebPage     *string `json:"WebPage"`
	Private     bool    `json:"Private"`

	// Typed phone slots as configured in the upstream system.
	PhoneType1  *string `json:"#PhoneType#1"`
	PhoneType2  *string `json:"#PhoneType#2"`
	PhoneType3  *string `json:"#PhoneType#3"`
	PhoneType4  *string `json:"#PhoneType#4"`
	PhoneType5  *string `json:"#PhoneType#5"`
	PhoneType6  *string `json:"#PhoneType#6"`
	PhoneType7  *string `json:"#PhoneType#7"`
	PhoneType8  *string `json:"#PhoneType#8"`
	PhoneType9  *string `json:"#PhoneType#9"`
	PhoneType10 *string `json:"#PhoneType#10"`
	PhoneType11 *string `json:"#PhoneType#11"`

	ParentCompanyId *int64  `json:"ParentCompanyId"` //nolint:revive // upstream key
	Categories      string  `json:"Categories"`
	Industries      string  `json:"Industries"`
	Bin             *string `json:"Bin"`
}

// Property describes a user-defined attribute attached to companies.
// Passed through to clients unmodified.
type Property struct {
	Id          int64   `json:"Id"` //nolint:revive // upstream key
	Name        string  `json:"Name"`
	Type        string  `json:"Type"`
	Format      string  `json:"Format"`
	BuiltIn     bool    `json:"BuiltIn"`
	Description *string `json:"Description"`
	Guid        string  `json:"Guid"` //nolint:revive // upstream key
	Visible     bool    `json:"Visible"`
}

// PropertyValue binds a Property value to a company (DocumentId).
type PropertyValue struct {
	PropertyId int64  `json:"PropertyId"` //nolint:revive // upstream key
	DocumentId int64  `json:"DocumentId"` //nolint:revive // upstream key
	Value      string `json:"Value"`
}

// Dataset is the full, unfiltered upstream response for one base query.
//
// Once stored in the cache a Dataset is treated as immutable: the query
// pipeline works on freshly allocated slices of pointers into Companies and
// never reorders or edits the backing array.
type Dataset struct {
	Companies      []Company       `json:"Companies"`
	Properties     []Property      `json:"Properties"`
	PropertyValues []PropertyValue `json:"PropertyValues"`
}

// Len returns the number of companies in the dataset (0 for nil).
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Companies)
}
