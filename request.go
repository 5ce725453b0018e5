package versionpager

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// ColumnRequest describes how one column, or every column of a family, is
// read.
type ColumnRequest struct {
	Name ColumnName
	// MaxVersions - total number of versions to return for the column.
	MaxVersions int
	// PageSize - number of versions per page. PagingDisabled turns paging off.
	PageSize int
	// Filter - optional value filter applied by the store.
	Filter Filter
}

func (c ColumnRequest) IsPagingEnabled() bool {
	return c.PageSize > PagingDisabled
}

func (c ColumnRequest) clone() ColumnRequest {
	c.Filter = c.Filter.clone()
	return c
}

func (c ColumnRequest) validate() error {
	if !validIdentifier(c.Name.Family) {
		return invalidArgumentf("invalid column family '%s'", c.Name.Family)
	}
	if c.MaxVersions < 1 {
		return invalidArgumentf("max versions of column '%s' must be >= 1, got %d", c.Name, c.MaxVersions)
	}
	if c.PageSize < PagingDisabled {
		return invalidArgumentf("page size of column '%s' must be >= 0, got %d", c.Name, c.PageSize)
	}
	if err := c.Filter.validate(); err != nil {
		return fmt.Errorf("%w: column '%s': %w", ErrInvalidArgument, c.Name, err)
	}

	return nil
}

// DataRequest is a read specification: a timestamp range [min, max) and the
// columns to read within it.
type DataRequest struct {
	minTimestamp int64
	maxTimestamp int64
	columns      []ColumnRequest
}

// NewDataRequest returns a request covering every timestamp and no column.
func NewDataRequest() *DataRequest {
	return &DataRequest{
		minTimestamp: EarliestTimestamp,
		maxTimestamp: LatestTimestamp,
	}
}

// WithTimeRange sets the inclusive lower and exclusive upper timestamp bound.
func (r *DataRequest) WithTimeRange(minTimestamp, maxTimestamp int64) *DataRequest {
	if r == nil {
		r = NewDataRequest()
	}

	r.minTimestamp = minTimestamp
	r.maxTimestamp = maxTimestamp

	return r
}

// WithSubstitutedColumns resets previous columns and applies the provided ones.
func (r *DataRequest) WithSubstitutedColumns(columns ...ColumnRequest) *DataRequest {
	if r == nil {
		r = NewDataRequest()
	}

	r.columns = nil

	return r.WithColumns(columns...)
}

// WithColumns appends column requests. A later request for the same column
// name replaces the earlier one.
func (r *DataRequest) WithColumns(columns ...ColumnRequest) *DataRequest {
	if r == nil {
		r = NewDataRequest()
	}

	for _, c := range columns {
		idx := slices.IndexFunc(r.columns, func(processed ColumnRequest) bool {
			return processed.Name == c.Name
		})

		// Remove previous occurrence (avoid duplication).
		if idx != -1 {
			r.columns = slices.Delete(r.columns, idx, idx+1)
		}

		r.columns = append(r.columns, c.clone())
	}

	return r
}

func (r *DataRequest) MinTimestamp() int64 {
	if r == nil {
		return EarliestTimestamp
	}

	return r.minTimestamp
}

func (r *DataRequest) MaxTimestamp() int64 {
	if r == nil {
		return LatestTimestamp
	}

	return r.maxTimestamp
}

// Columns returns a copy of the requested columns.
func (r *DataRequest) Columns() []ColumnRequest {
	if r == nil {
		return nil
	}

	return lo.Map(r.columns, func(c ColumnRequest, _ int) ColumnRequest { return c.clone() })
}

// Column returns the request for family:qualifier. When the qualifier was not
// requested on its own, the request for the whole family applies.
func (r *DataRequest) Column(family, qualifier string) (ColumnRequest, error) {
	name := ColumnName{Family: family, Qualifier: qualifier}
	if r == nil {
		return ColumnRequest{}, invalidArgumentf("column '%s' is not requested", name)
	}

	if c, ok := lo.Find(r.columns, func(c ColumnRequest) bool { return c.Name == name }); ok {
		return c.clone(), nil
	}

	familyName := ColumnName{Family: family}
	if c, ok := lo.Find(r.columns, func(c ColumnRequest) bool { return c.Name == familyName }); ok {
		c.Name = name
		return c.clone(), nil
	}

	requested := lo.Map(r.columns, func(c ColumnRequest, _ int) string { return c.Name.String() })

	return ColumnRequest{}, invalidArgumentf("column '%s' is not requested. closest: '%s'",
		name, closestColumn(name.String(), requested))
}

// Validate checks the time range and every column request.
func (r *DataRequest) Validate() error {
	if r == nil {
		return invalidArgumentf("data request is nil")
	}

	if r.minTimestamp < EarliestTimestamp || r.minTimestamp >= r.maxTimestamp {
		return invalidArgumentf("invalid time range [%d, %d)", r.minTimestamp, r.maxTimestamp)
	}

	if len(r.columns) == 0 {
		return invalidArgumentf("data request has no column")
	}

	for _, c := range r.columns {
		if err := c.validate(); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns a deep copy of the request.
func (r *DataRequest) Clone() *DataRequest {
	if r == nil {
		return nil
	}

	return &DataRequest{
		minTimestamp: r.minTimestamp,
		maxTimestamp: r.maxTimestamp,
		columns:      r.Columns(),
	}
}

// RawDataRequest is intended for API payloads and configuration files.
//
//	{"maxTimestamp": 1700000000000, "columns": [{"column": "info:email", "maxVersions": 100, "pageSize": 10}]}
type RawDataRequest struct {
	// MinTimestamp - inclusive lower bound. Zero means EarliestTimestamp.
	MinTimestamp int64 `json:"minTimestamp"`
	// MaxTimestamp - exclusive upper bound. Zero means LatestTimestamp.
	MaxTimestamp int64              `json:"maxTimestamp"`
	Columns      []RawColumnRequest `json:"columns"`
}

type RawColumnRequest struct {
	// Column - "family" or "family:qualifier".
	Column string `json:"column"`
	// MaxVersions - normalized with NormalizeMaxVersions.
	MaxVersions int `json:"maxVersions"`
	// PageSize - normalized with NormalizePageSize; empty disables paging.
	PageSize int    `json:"pageSize"`
	Filter   Filter `json:"filter,omitempty"`
}

// Decode converts RawDataRequest into a validated *DataRequest, normalizing
// max versions and page sizes.
func (p RawDataRequest) Decode() (*DataRequest, error) {
	maxTimestamp := lo.Ternary(p.MaxTimestamp == 0, LatestTimestamp, p.MaxTimestamp)
	req := NewDataRequest().WithTimeRange(p.MinTimestamp, maxTimestamp)

	for _, raw := range p.Columns {
		name, err := ParseColumnName(raw.Column)
		if err != nil {
			return nil, fmt.Errorf("cannot decode data request: %w", err)
		}

		maxVersions := NormalizeMaxVersions(raw.MaxVersions)
		req.WithColumns(ColumnRequest{
			Name:        name,
			MaxVersions: maxVersions,
			PageSize:    NormalizePageSize(raw.PageSize, maxVersions),
			Filter:      raw.Filter,
		})
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("cannot decode data request: %w", err)
	}

	return req, nil
}
