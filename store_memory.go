package versionpager

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryStore keeps versions in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	cells map[memoryKey][]Cell // newest first
}

type memoryKey struct {
	entityID string
	column   ColumnName
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cells: make(map[memoryKey][]Cell),
	}
}

// Put writes one version, replacing the version with the same timestamp.
func (s *MemoryStore) Put(entityID EntityID, column ColumnName, timestamp int64, value []byte) error {
	if !column.IsFullyQualified() {
		return invalidArgumentf("column '%s' is not fully qualified", column)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey{entityID: string(entityID), column: column}
	cell := Cell{Family: column.Family, Qualifier: column.Qualifier, Timestamp: timestamp, Value: slices.Clone(value)}

	versions := s.cells[key]
	idx, found := slices.BinarySearchFunc(versions, timestamp, func(c Cell, ts int64) int {
		return cmp.Compare(ts, c.Timestamp)
	})
	if found {
		versions[idx] = cell
	} else {
		versions = slices.Insert(versions, idx, cell)
	}
	s.cells[key] = versions

	return nil
}

// ReadVersions - implements VersionReader.
func (s *MemoryStore) ReadVersions(ctx context.Context, read PointRead) ([]Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if read.MaxVersions <= 0 {
		return nil, nil
	}
	if err := read.Filter.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := s.cells[memoryKey{entityID: string(read.EntityID), column: read.Column}]

	ret := make([]Cell, 0, min(read.MaxVersions, len(versions)))
	for _, c := range versions {
		if len(ret) >= read.MaxVersions {
			break
		}
		if c.Timestamp >= read.MaxTimestamp {
			continue
		}
		if c.Timestamp < read.MinTimestamp {
			break
		}
		if !read.Filter.Match(c.Value) {
			continue
		}

		ret = append(ret, c.clone())
	}

	return ret, nil
}

var _ VersionReader = (*MemoryStore)(nil)
