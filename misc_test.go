package versionpager

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

var (
	testEntityID = EntityID("row-42")
	testColumn   = ColumnName{Family: "info", Qualifier: "email"}
)

// fakeTable counts Retain and Release calls.
type fakeTable struct {
	reader    VersionReader
	retainErr error
	retains   int
	releases  int
}

func (f *fakeTable) Retain() error {
	if f.retainErr != nil {
		return f.retainErr
	}
	f.retains++

	return nil
}

func (f *fakeTable) Release() error {
	f.releases++
	return nil
}

func (f *fakeTable) Reader() VersionReader {
	return f.reader
}

// recordingReader remembers every point read and delegates to next.
type recordingReader struct {
	next  VersionReader
	reads []PointRead
	// fail, when set, replaces the reply of the read with that index.
	fail map[int]error
}

func (r *recordingReader) ReadVersions(ctx context.Context, read PointRead) ([]Cell, error) {
	idx := len(r.reads)
	r.reads = append(r.reads, read)

	if err, ok := r.fail[idx]; ok {
		return nil, err
	}

	return r.next.ReadVersions(ctx, read)
}

type readerFunc func(ctx context.Context, read PointRead) ([]Cell, error)

func (f readerFunc) ReadVersions(ctx context.Context, read PointRead) ([]Cell, error) {
	return f(ctx, read)
}

// newSeededStore returns a store holding one version of testColumn at every
// given timestamp.
func newSeededStore(t testing.TB, timestamps ...int64) *MemoryStore {
	store := NewMemoryStore()
	for _, ts := range timestamps {
		err := store.Put(testEntityID, testColumn, ts, []byte(fmt.Sprintf("v%d", ts)))
		require.NoError(t, err)
	}

	return store
}

// tsRange returns the timestamps [from, to].
func tsRange(from, to int64) []int64 {
	ret := make([]int64, 0, to-from+1)
	for ts := from; ts <= to; ts++ {
		ret = append(ret, ts)
	}

	return ret
}

func pagedRequest(maxVersions, pageSize int) *DataRequest {
	return NewDataRequest().WithColumns(ColumnRequest{
		Name:        testColumn,
		MaxVersions: maxVersions,
		PageSize:    pageSize,
	})
}

func cellTimestamps(cells []Cell) []int64 {
	ret := make([]int64, 0, len(cells))
	for _, c := range cells {
		ret = append(ret, c.Timestamp)
	}

	return ret
}
