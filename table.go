package versionpager

import (
	"fmt"
	"sync/atomic"
)

// TableHandle is a reference-counted handle on a remote table. Every Retain
// must be paired with exactly one Release.
type TableHandle interface {
	Retain() error
	Release() error
}

// Table is a table handle that can also read versions.
type Table interface {
	TableHandle
	Reader() VersionReader
}

// SharedTable is a Table shared by several users. The opener holds the first
// reference; the table is closed when the last reference is released.
type SharedTable struct {
	name    string
	reader  VersionReader
	refs    atomic.Int64
	onClose func() error
}

// NewSharedTable returns a table holding one reference. onClose, if not nil,
// runs once when the reference count drops to zero.
func NewSharedTable(name string, reader VersionReader, onClose func() error) *SharedTable {
	t := &SharedTable{
		name:    name,
		reader:  reader,
		onClose: onClose,
	}
	t.refs.Store(1)

	return t
}

func (t *SharedTable) Name() string {
	return t.name
}

func (t *SharedTable) Reader() VersionReader {
	return t.reader
}

// Refs returns the current reference count.
func (t *SharedTable) Refs() int64 {
	return t.refs.Load()
}

// Retain adds a reference. It fails once the table was closed.
func (t *SharedTable) Retain() error {
	for {
		refs := t.refs.Load()
		if refs <= 0 {
			return fmt.Errorf("cannot retain table '%s': %w", t.name, ErrTableClosed)
		}
		if t.refs.CompareAndSwap(refs, refs+1) {
			return nil
		}
	}
}

// Release drops a reference and closes the table when it was the last one.
func (t *SharedTable) Release() error {
	for {
		refs := t.refs.Load()
		if refs <= 0 {
			return fmt.Errorf("cannot release table '%s': %w", t.name, ErrTableClosed)
		}
		if !t.refs.CompareAndSwap(refs, refs-1) {
			continue
		}

		if refs == 1 && t.onClose != nil {
			if err := t.onClose(); err != nil {
				return fmt.Errorf("cannot close table '%s': %w", t.name, err)
			}
		}

		return nil
	}
}

var _ Table = (*SharedTable)(nil)
