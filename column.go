package versionpager

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// EntityID is the row key of a row in a wide-column table.
type EntityID []byte

// String returns the lowercase hex encoding of the row key.
func (e EntityID) String() string {
	return hex.EncodeToString(e)
}

func (e EntityID) Equal(other EntityID) bool {
	return bytes.Equal(e, other)
}

func (e EntityID) Clone() EntityID {
	return slices.Clone(e)
}

// ColumnName names a column family, or one qualified column inside a family
// when Qualifier is set.
type ColumnName struct {
	Family    string `json:"family"`
	Qualifier string `json:"qualifier,omitempty"`
}

// ParseColumnName parses "family" or "family:qualifier".
func ParseColumnName(s string) (ColumnName, error) {
	family, qualifier, _ := strings.Cut(strings.TrimSpace(s), ":")
	if family == "" {
		return ColumnName{}, invalidArgumentf("column name '%s' has an empty family", s)
	}

	return ColumnName{Family: family, Qualifier: qualifier}, nil
}

func (c ColumnName) IsFullyQualified() bool {
	return c.Qualifier != ""
}

// String - implements fmt.Stringer.
func (c ColumnName) String() string {
	if !c.IsFullyQualified() {
		return c.Family
	}

	return c.Family + ":" + c.Qualifier
}

var _ fmt.Stringer = ColumnName{}

// Cell is one timestamped version of a column.
type Cell struct {
	Family    string
	Qualifier string
	Timestamp int64
	Value     []byte
}

func (c Cell) Column() ColumnName {
	return ColumnName{Family: c.Family, Qualifier: c.Qualifier}
}

func (c Cell) clone() Cell {
	c.Value = slices.Clone(c.Value)
	return c
}
