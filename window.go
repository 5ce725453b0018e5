package versionpager

// buildWindowRequest derives the request for one page: the column of base
// with its filter, over [base.MinTimestamp, maxTimestamp), capped at
// windowSize versions.
func buildWindowRequest(
	base *DataRequest,
	column ColumnName,
	maxTimestamp int64,
	windowSize int,
	filter Filter,
) *DataRequest {
	return NewDataRequest().
		WithTimeRange(base.MinTimestamp(), maxTimestamp).
		WithColumns(ColumnRequest{
			Name:        column,
			MaxVersions: windowSize,
			Filter:      filter,
		})
}
