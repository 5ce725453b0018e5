package versionpager

import (
	"context"
	"fmt"
	"iter"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// VersionPager pages through the versions of a fully-qualified column.
//
// Each page is fetched by one point read. The page size becomes the read's
// max versions and the pager position becomes its exclusive max timestamp.
//
// A VersionPager must be closed to release its table reference. It is not
// safe for concurrent use.
type VersionPager struct {
	entityID      EntityID
	dataRequest   *DataRequest
	columnRequest ColumnRequest
	table         Table
	column        ColumnName
	logger        zerolog.Logger

	defaultPageSize int
	totalVersions   int

	// Cursor.
	versionsCount    int
	pageMaxTimestamp int64
	hasNext          bool

	resumeFrom *VersionCursor
	closed     bool
}

type Option func(*VersionPager)

// WithLogger sets the logger used for debug output. Defaults to zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(p *VersionPager) {
		p.logger = logger
	}
}

// WithCursor resumes paging from a cursor returned by VersionPager.Cursor of
// a pager built over the same request. A nil cursor starts from the newest
// version.
func WithCursor(cursor *VersionCursor) Option {
	return func(p *VersionPager) {
		p.resumeFrom = cursor
	}
}

// NewVersionPager returns a pager over the versions of column in the row
// entityID, as requested by dataRequest.
//
// It fails with ErrInvalidArgument when column is not fully qualified or not
// part of dataRequest, and with *PagingNotEnabledError when the column
// request has no page size. The table is retained only when everything else
// succeeded.
func NewVersionPager(
	entityID EntityID,
	dataRequest *DataRequest,
	table Table,
	column ColumnName,
	opts ...Option,
) (*VersionPager, error) {
	if !column.IsFullyQualified() {
		return nil, invalidArgumentf("column '%s' is not fully qualified", column)
	}
	if table == nil {
		return nil, invalidArgumentf("table is nil")
	}

	columnRequest, err := dataRequest.Column(column.Family, column.Qualifier)
	if err != nil {
		return nil, fmt.Errorf("cannot page column: %w", err)
	}

	if !columnRequest.IsPagingEnabled() {
		return nil, &PagingNotEnabledError{Column: column}
	}

	// Request for this column only.
	columnOnly := NewDataRequest().
		WithTimeRange(dataRequest.MinTimestamp(), dataRequest.MaxTimestamp()).
		WithColumns(columnRequest)
	if err = columnOnly.Validate(); err != nil {
		return nil, fmt.Errorf("cannot page column: %w", err)
	}

	p := &VersionPager{
		entityID:         entityID.Clone(),
		dataRequest:      columnOnly,
		columnRequest:    columnRequest,
		table:            table,
		column:           column,
		logger:           zerolog.Nop(),
		defaultPageSize:  columnRequest.PageSize,
		totalVersions:    columnRequest.MaxVersions,
		versionsCount:    0,
		pageMaxTimestamp: columnOnly.MaxTimestamp(),
		// There might be no page to read, but that is only known after a read.
		hasNext: true,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err = p.resume(); err != nil {
		return nil, fmt.Errorf("cannot resume paging: %w", err)
	}

	// Only retain the table if everything else ran fine.
	if err = table.Retain(); err != nil {
		return nil, fmt.Errorf("cannot page column: %w", err)
	}

	return p, nil
}

func (p *VersionPager) resume() error {
	c := p.resumeFrom
	if c == nil {
		return nil
	}

	err := c.validate(p.dataRequest.MinTimestamp(), p.dataRequest.MaxTimestamp(), p.totalVersions)
	if err != nil {
		return err
	}

	p.pageMaxTimestamp = c.MaxTimestamp
	p.versionsCount = c.VersionsCount
	p.hasNext = !c.Exhausted

	return nil
}

// HasNext reports whether another page may be read with Next.
func (p *VersionPager) HasNext() bool {
	return p.hasNext
}

// Next fetches the next page using the column's configured page size.
func (p *VersionPager) Next(ctx context.Context) (*Page, error) {
	return p.NextN(ctx, p.defaultPageSize)
}

// NextN fetches the next page of at most pageSize versions.
//
// It fails with ErrInvalidArgument when pageSize < 1, with ErrNoMoreElements
// when HasNext is false and with *StoreIOError when the read fails. A failed
// call leaves the pager position unchanged.
func (p *VersionPager) NextN(ctx context.Context, pageSize int) (*Page, error) {
	if pageSize <= 0 {
		return nil, invalidArgumentf("page size must be >= 1, got %d", pageSize)
	}
	if !p.hasNext {
		return nil, ErrNoMoreElements
	}
	if p.closed {
		return nil, ErrPagerClosed
	}

	maxVersions := min(p.totalVersions-p.versionsCount, pageSize)

	// Same column and filter, tighter max timestamp and max versions.
	nextPageRequest := buildWindowRequest(
		p.dataRequest,
		p.column,
		p.pageMaxTimestamp,
		maxVersions,
		p.columnRequest.Filter,
	)

	p.logger.Debug().
		Stringer("entity_id", p.entityID).
		Stringer("column", p.column).
		Int64("min_timestamp", nextPageRequest.MinTimestamp()).
		Int64("max_timestamp", nextPageRequest.MaxTimestamp()).
		Int("max_versions", maxVersions).
		Msg("sending point read")

	cells, err := fetchWindow(ctx, p.table.Reader(), p.entityID, nextPageRequest)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch next page: %w", err)
	}

	p.logger.Debug().Msgf("%d cells were requested, %d cells were received", maxVersions, len(cells))

	if len(cells) < maxVersions {
		// Fewer versions than asked for: nothing is left to page through.
		p.hasNext = false
	} else {
		// Max timestamp is exclusive: the last cell is not read again.
		p.pageMaxTimestamp = lo.LastOrEmpty(cells).Timestamp
		p.versionsCount += len(cells)

		if p.pageMaxTimestamp <= p.dataRequest.MinTimestamp() || p.versionsCount >= p.totalVersions {
			p.hasNext = false
		}
	}

	return NewPage(p.entityID, nextPageRequest, cells), nil
}

// Pages iterates over the remaining pages using the default page size. The
// iteration stops after the first error.
func (p *VersionPager) Pages(ctx context.Context) iter.Seq2[*Page, error] {
	return func(yield func(*Page, error) bool) {
		for p.HasNext() {
			page, err := p.Next(ctx)
			if !yield(page, err) || err != nil {
				return
			}
		}
	}
}

// Cursor returns the current position. Pass it to WithCursor to continue
// paging from here with another pager.
func (p *VersionPager) Cursor() *VersionCursor {
	return &VersionCursor{
		MaxTimestamp:  p.pageMaxTimestamp,
		VersionsCount: p.versionsCount,
		Exhausted:     !p.hasNext,
	}
}

// Remove is not supported: a pager only reads.
func (p *VersionPager) Remove() error {
	return fmt.Errorf("%w: VersionPager.Remove", ErrUnsupportedOperation)
}

// Close releases the table reference taken by NewVersionPager. Subsequent
// calls do nothing.
func (p *VersionPager) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.table.Release(); err != nil {
		return fmt.Errorf("cannot close version pager: %w", err)
	}

	return nil
}
