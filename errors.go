package versionpager

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for caller errors: a column that is not
	// fully qualified, a non-positive page size, a malformed request or token.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoMoreElements is returned by Next when the pager is exhausted.
	ErrNoMoreElements = errors.New("no more elements")

	// ErrUnsupportedOperation is returned by VersionPager.Remove.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrPagingNotEnabled matches every *PagingNotEnabledError.
	ErrPagingNotEnabled = errors.New("paging not enabled")

	// ErrPagerClosed is returned when a closed pager is asked for a page.
	ErrPagerClosed = errors.New("pager is closed")

	// ErrTableClosed is returned when retaining or releasing a table whose
	// reference count already dropped to zero.
	ErrTableClosed = errors.New("table is closed")

	// ErrMalformedReply is wrapped into a *StoreIOError when a store returns
	// more versions than requested or versions out of newest-first order.
	ErrMalformedReply = errors.New("malformed store reply")
)

// PagingNotEnabledError is returned when a pager is requested for a column
// whose request has no page size.
type PagingNotEnabledError struct {
	Column ColumnName
}

func (e *PagingNotEnabledError) Error() string {
	return fmt.Sprintf("paging is not enabled for column '%s'", e.Column)
}

func (e *PagingNotEnabledError) Is(target error) bool {
	return target == ErrPagingNotEnabled
}

// StoreIOError wraps a failure of the underlying store.
//
// The original error can be accessed via errors.Unwrap.
type StoreIOError struct {
	EntityID EntityID
	Column   ColumnName
	cause    error
}

func (e *StoreIOError) Error() string {
	return fmt.Sprintf("cannot read versions of '%s' in row %s: %v", e.Column, e.EntityID, e.cause)
}

func (e *StoreIOError) Unwrap() error { return e.cause }

func invalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
