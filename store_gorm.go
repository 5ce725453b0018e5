package versionpager

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultCellsTable is the table GormStore uses when none is given.
const DefaultCellsTable = "cells"

// cellRow is one version in a cells table.
type cellRow struct {
	EntityID  string `gorm:"column:entity_id;primaryKey;size:255"`
	Family    string `gorm:"column:family;primaryKey;size:255"`
	Qualifier string `gorm:"column:qualifier;primaryKey;size:255"`
	Timestamp int64  `gorm:"column:ts;primaryKey;autoIncrement:false"`
	Value     []byte `gorm:"column:val"`
}

func (r cellRow) toCell() Cell {
	return Cell{
		Family:    r.Family,
		Qualifier: r.Qualifier,
		Timestamp: r.Timestamp,
		Value:     r.Value,
	}
}

// GormStore stores versions in a relational table, one row per version,
// keyed by (entity_id, family, qualifier, ts).
type GormStore struct {
	db    *gorm.DB
	table string
}

// NewGormStore returns a store over the given table of db. An empty table
// name means DefaultCellsTable.
func NewGormStore(db *gorm.DB, table string) (*GormStore, error) {
	table = lo.Ternary(table == "", DefaultCellsTable, table)
	if !validIdentifier(table) {
		return nil, invalidArgumentf("table name contains forbidden symbols '%s'", table)
	}

	return &GormStore{db: db, table: table}, nil
}

// Migrate creates or updates the cells table.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Table(s.table).AutoMigrate(&cellRow{}); err != nil {
		return fmt.Errorf("cannot migrate table '%s': %w", s.table, err)
	}

	return nil
}

// Put writes one version, replacing the version with the same timestamp.
func (s *GormStore) Put(ctx context.Context, entityID EntityID, column ColumnName, timestamp int64, value []byte) error {
	if !column.IsFullyQualified() {
		return invalidArgumentf("column '%s' is not fully qualified", column)
	}

	row := cellRow{
		EntityID:  entityID.String(),
		Family:    column.Family,
		Qualifier: column.Qualifier,
		Timestamp: timestamp,
		Value:     slices.Clone(value),
	}

	if err := s.db.WithContext(ctx).
		Table(s.table).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error; err != nil {
		return fmt.Errorf("cannot put version of '%s' in row %s: %w", column, entityID, err)
	}

	return nil
}

// ReadVersions - implements VersionReader.
//
//	SELECT * FROM cells
//	WHERE (entity_id = ? AND family = ? AND qualifier = ? AND ts >= ? AND ts < ? [AND val <op> ?...])
//	ORDER BY ts DESC LIMIT <max versions>
func (s *GormStore) ReadVersions(ctx context.Context, read PointRead) ([]Cell, error) {
	if read.MaxVersions <= 0 {
		return nil, nil
	}

	var rows []cellRow
	err := s.db.WithContext(ctx).
		Table(s.table).
		Clauses(read.toConjunction().toGORMExpression()).
		Order(clause.OrderByColumn{Column: clause.Column{Name: columnTimestamp}, Desc: true}).
		Limit(read.MaxVersions).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("cannot query table '%s': %w", s.table, err)
	}

	return lo.Map(rows, func(r cellRow, _ int) Cell { return r.toCell() }), nil
}

var _ VersionReader = (*GormStore)(nil)
