package versionpager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	cells := []Cell{
		{Family: "info", Qualifier: "email", Timestamp: 30, Value: []byte("c")},
		{Family: "info", Qualifier: "email", Timestamp: 20, Value: []byte("b")},
		{Family: "info", Qualifier: "email", Timestamp: 10, Value: []byte("a")},
	}
	entityID := EntityID("row-1")
	req := pagedRequest(3, 3)

	page := NewPage(entityID, req, cells)

	// Mutating the inputs does not leak into the page.
	cells[0].Value[0] = 'z'
	entityID[0] = 'X'
	req.WithTimeRange(1, 2)

	require.Equal(t, EntityID("row-1"), page.EntityID())
	require.Equal(t, LatestTimestamp, page.Request().MaxTimestamp())
	require.Equal(t, 3, page.Len())
	require.False(t, page.IsEmpty())
	require.Equal(t, []byte("c"), page.Cells()[0].Value)

	// Neither do mutations of the returned values.
	page.Cells()[0].Value[0] = 'y'
	require.Equal(t, []byte("c"), page.Cells()[0].Value)

	newest, ok := page.MostRecent()
	require.True(t, ok)
	require.Equal(t, int64(30), newest.Timestamp)

	oldest, ok := page.Oldest()
	require.True(t, ok)
	require.Equal(t, int64(10), oldest.Timestamp)
	require.Equal(t, testColumn, oldest.Column())

	require.Equal(t, map[int64][]byte{30: []byte("c"), 20: []byte("b"), 10: []byte("a")}, page.Values())
}

func TestPage_Empty(t *testing.T) {
	page := NewPage(testEntityID, pagedRequest(3, 3), nil)

	require.True(t, page.IsEmpty())
	require.Zero(t, page.Len())
	require.Empty(t, page.Cells())
	require.Empty(t, page.Values())

	_, ok := page.MostRecent()
	require.False(t, ok)
	_, ok = page.Oldest()
	require.False(t, ok)
}
