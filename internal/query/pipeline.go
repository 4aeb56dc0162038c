// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package query

import (
	"time"

	"golang.org/x/text/language"

	"github.com/tomtom215/companydesk/internal/metrics"
	"github.com/tomtom215/companydesk/internal/models"
)

// Pipeline stage labels used in query_pipeline_* metrics.
const (
	StageSearch   = "search"
	StageFilter   = "filter"
	StageSort     = "sort"
	StagePaginate = "paginate"
)

// Params are the per-request view parameters applied to a cached dataset.
type Params struct {
	Search        string
	SearchFields  []string
	Filters       *models.CompanyFilters
	SortBy        string
	SortDirection string
	Page          int
	PageSize      int
}

// ParamsFromRequest extracts the view parameters of a browse request.
func ParamsFromRequest(req *models.BrowseRequest) Params {
	return Params{
		Search:        req.Search,
		SearchFields:  req.SearchFields,
		Filters:       req.Filters,
		SortBy:        req.SortBy,
		SortDirection: req.SortDirection,
		Page:          req.Page,
		PageSize:      req.PageSize,
	}
}

// SearchStats describes an applied search stage.
type SearchStats struct {
	Query   string
	Fields  []string
	Matches int
	Elapsed time.Duration
}

// Result is the output of one pipeline run.
type Result struct {
	Items             []*models.Company
	Pagination        models.Pagination
	TotalBeforeFilter int
	TotalAfterFilter  int
	Search            *SearchStats // nil when no search was applied
}

// Options configures a Pipeline.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	Collation       language.Tag
}

// Pipeline runs search, filter, sort and paginate, in that order, over a
// dataset. It never mutates the dataset and is safe for concurrent use.
type Pipeline struct {
	opts   Options
	sorter *Sorter
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = 50
	}
	return &Pipeline{
		opts:   opts,
		sorter: NewSorter(opts.Collation),
	}
}

// Run applies every stage and returns one page.
func (p *Pipeline) Run(ds *models.Dataset, params Params) Result {
	res := p.RunAll(ds, params)

	page, size := normalizePage(params.Page, params.PageSize, p.opts.DefaultPageSize, p.opts.MaxPageSize)
	start := time.Now()
	res.Items, res.Pagination = Paginate(res.Items, page, size)
	metrics.RecordPipelineStage(StagePaginate, time.Since(start), len(res.Items))

	return res
}

// RunAll applies search, filter and sort without paginating.
// Pagination in the result is left zero.
func (p *Pipeline) RunAll(ds *models.Dataset, params Params) Result {
	items := make([]*models.Company, ds.Len())
	for i := range items {
		items[i] = &ds.Companies[i]
	}
	res := Result{TotalBeforeFilter: len(items)}

	if SearchActive(params.Search) {
		fields := ResolveSearchFields(params.SearchFields)
		start := time.Now()
		items = Search(items, params.Search, fields)
		elapsed := time.Since(start)
		metrics.RecordPipelineStage(StageSearch, elapsed, len(items))

		res.Search = &SearchStats{
			Query:   params.Search,
			Fields:  fields,
			Matches: len(items),
			Elapsed: elapsed,
		}
	}

	if !params.Filters.IsEmpty() {
		start := time.Now()
		items = Filter(items, params.Filters)
		metrics.RecordPipelineStage(StageFilter, time.Since(start), len(items))
	}

	res.TotalAfterFilter = len(items)

	if SortActive(params.SortBy) {
		start := time.Now()
		items = p.sorter.Sort(items, params.SortBy, params.SortDirection)
		metrics.RecordPipelineStage(StageSort, time.Since(start), len(items))
	}

	res.Items = items
	return res
}
