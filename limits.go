package versionpager

import "math"

const (
	// PagingDisabled is the PageSize of a column that is read in one go.
	PagingDisabled = 0
	// AllVersions asks for every version of a column.
	AllVersions = math.MaxInt32
	// DefaultMaxVersions is used when a raw request leaves MaxVersions empty.
	DefaultMaxVersions = 1

	// EarliestTimestamp is the default inclusive lower timestamp bound.
	EarliestTimestamp int64 = 0
	// LatestTimestamp is the default exclusive upper timestamp bound.
	LatestTimestamp int64 = math.MaxInt64
)

// IsNormalizedMaxVersions reports the effective max-versions value and whether
// the given value was used as-is. Non-positive values fall back to
// DefaultMaxVersions, values above AllVersions are clamped.
func IsNormalizedMaxVersions(maxVersions int) (int, bool) {
	if maxVersions <= 0 {
		return DefaultMaxVersions, false
	} else if maxVersions > AllVersions {
		return AllVersions, false
	}

	return maxVersions, true
}

func NormalizeMaxVersions(maxVersions int) int {
	ret, _ := IsNormalizedMaxVersions(maxVersions)
	return ret
}

// NormalizePageSize maps every non-positive page size to PagingDisabled and
// clamps the rest to maxVersions: a page never holds more than the column.
func NormalizePageSize(pageSize int, maxVersions int) int {
	if pageSize <= 0 {
		return PagingDisabled
	}

	return min(pageSize, maxVersions)
}
