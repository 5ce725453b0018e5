package versionpager

import (
	"cmp"
	"context"
	"database/sql/driver"
	"fmt"
	"slices"
)

// VersionReader is the single capability a pager needs from a store.
//
// ReadVersions must return at most read.MaxVersions cells of read.Column in
// row read.EntityID with MinTimestamp <= timestamp < MaxTimestamp that pass
// read.Filter, newest first.
type VersionReader interface {
	ReadVersions(ctx context.Context, read PointRead) ([]Cell, error)
}

// PointRead is a bounded read of one column of one row.
type PointRead struct {
	EntityID EntityID
	Column   ColumnName
	// MinTimestamp - inclusive.
	MinTimestamp int64
	// MaxTimestamp - exclusive.
	MaxTimestamp int64
	MaxVersions  int
	Filter       Filter
}

// Cell column names used by ToSQL and GormStore.
const (
	columnEntityID  = "entity_id"
	columnFamily    = "family"
	columnQualifier = "qualifier"
	columnTimestamp = "ts"
	columnValue     = "val"
)

// toConjunction expands the read into:
//
//	entity_id = ? AND family = ? AND qualifier = ? AND ts >= ? AND ts < ? [AND val <op> ?...]
func (r PointRead) toConjunction() tConjunction {
	conds := tConjunction{
		{Column: columnEntityID, Operator: OperatorEQ, Value: r.EntityID.String()},
		{Column: columnFamily, Operator: OperatorEQ, Value: r.Column.Family},
		{Column: columnQualifier, Operator: OperatorEQ, Value: r.Column.Qualifier},
		{Column: columnTimestamp, Operator: OperatorGE, Value: r.MinTimestamp},
		{Column: columnTimestamp, Operator: OperatorLT, Value: r.MaxTimestamp},
	}

	return append(conds, r.Filter.toConditions(columnValue)...)
}

// ToSQL returns the WHERE condition of the read over a cells table laid out
// like GormStore's, with "?" placeholders.
//
// Usage:
//
//	cond, args := read.ToSQL()
//	query := fmt.Sprintf("SELECT * FROM cells WHERE %s ORDER BY ts DESC LIMIT %d", cond, read.MaxVersions)
func (r PointRead) ToSQL() (string, []driver.Value) {
	return r.toConjunction().toSQLClause()
}

// newPointRead translates a single-column window request into a PointRead.
func newPointRead(entityID EntityID, req *DataRequest) (PointRead, error) {
	columns := req.Columns()
	if len(columns) != 1 {
		return PointRead{}, invalidArgumentf("window request must hold exactly one column, got %d", len(columns))
	}

	column := columns[0]

	return PointRead{
		EntityID:     entityID,
		Column:       column.Name,
		MinTimestamp: req.MinTimestamp(),
		MaxTimestamp: req.MaxTimestamp(),
		MaxVersions:  column.MaxVersions,
		Filter:       column.Filter,
	}, nil
}

// fetchWindow executes one window request. Every failure, including a reply
// that breaks the VersionReader contract, is returned as a *StoreIOError.
func fetchWindow(ctx context.Context, reader VersionReader, entityID EntityID, req *DataRequest) ([]Cell, error) {
	read, err := newPointRead(entityID, req)
	if err != nil {
		return nil, err
	}

	cells, err := reader.ReadVersions(ctx, read)
	if err != nil {
		return nil, &StoreIOError{EntityID: entityID, Column: read.Column, cause: err}
	}

	if err = checkReply(read, cells); err != nil {
		return nil, &StoreIOError{EntityID: entityID, Column: read.Column, cause: err}
	}

	return cells, nil
}

func checkReply(read PointRead, cells []Cell) error {
	if len(cells) > read.MaxVersions {
		return fmt.Errorf("%w: %d cells returned for %d requested", ErrMalformedReply, len(cells), read.MaxVersions)
	}

	sorted := slices.IsSortedFunc(cells, func(a, b Cell) int {
		// Newest first.
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	if !sorted {
		return fmt.Errorf("%w: cells are not ordered newest first", ErrMalformedReply)
	}

	return nil
}
