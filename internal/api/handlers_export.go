// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package api

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/companydesk/internal/logging"
	"github.com/tomtom215/companydesk/internal/models"
	"github.com/tomtom215/companydesk/internal/query"
)

// exportColumns are the CSV columns, in order. Values come from the same
// field accessors the query pipeline uses.
var exportColumns = []string{
	"Id",
	"FileAs",
	"LegalName",
	"LegalCode",
	"KPP",
	"Phone1",
	"Phone2",
	"Email",
	"WebPage",
	"Country",
	"Region",
	"City",
	"Street",
	"PostalCode",
	"Industries",
	"Categories",
	"CompanySizeId",
	"ApplyVAT",
	"Private",
	"Created",
	"Modified",
}

// ExportCompanies handles POST /companies/export. It accepts the same body
// as Companies and streams every matching company (search, filter and sort
// applied, no pagination) as CSV.
func (h *Handler) ExportCompanies(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBrowseInput(w, r)
	if !ok {
		return
	}

	out, err := h.service.Export(r.Context(), in.base, query.ParamsFromRequest(&in.req))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	filename := "companies-" + h.now().UTC().Format("20060102-150405") + ".csv"
	hdr := w.Header()
	hdr.Set("Content-Type", "text/csv; charset=utf-8")
	hdr.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	hdr.Set("Cache-Control", "no-store")
	hdr.Set(headerCache, cacheStatus(out.CacheHit))
	hdr.Set(headerTotalAfterFilter, strconv.Itoa(out.Result.TotalAfterFilter))
	w.WriteHeader(http.StatusOK)

	// UTF-8 BOM so spreadsheet applications detect the encoding of Cyrillic names.
	if _, err := w.Write([]byte("\ufeff")); err != nil {
		return
	}

	if err := writeCompaniesCSV(w, out.Result.Items); err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to write CSV export")
		return
	}

	logging.CtxInfo(r.Context()).
		Int("rows", len(out.Result.Items)).
		Bool("cache_hit", out.CacheHit).
		Msg("Companies exported")
}

// writeCompaniesCSV writes a header row and one row per company.
func writeCompaniesCSV(w http.ResponseWriter, items []*models.Company) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return err
	}

	row := make([]string, len(exportColumns))
	for _, c := range items {
		for i, col := range exportColumns {
			row[i] = exportCell(c, col)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// exportCell renders one field. Nulls are empty cells.
func exportCell(c *models.Company, field string) string {
	accessor, ok := query.Fields[field]
	if !ok {
		return ""
	}
	text, ok := accessor(c).Text()
	if !ok {
		return ""
	}
	return neutralizeFormula(text)
}

// neutralizeFormula prefixes a quote to cells a spreadsheet would evaluate
// as a formula. Leading + or - is allowed for phone-like values such as
// "+7 (495) 123-45-67".
func neutralizeFormula(text string) string {
	if text == "" {
		return text
	}
	switch text[0] {
	case '=', '@', '\t', '\r':
		return "'" + text
	case '+', '-':
		if strings.Trim(text[1:], "0123456789 ()-.") != "" {
			return "'" + text
		}
	}
	return text
}
