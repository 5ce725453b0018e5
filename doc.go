// Package versionpager pages through the versions of a single column of a
// wide-column store row.
//
// Overview
//
// A fully-qualified column may hold far more timestamped versions than can be
// fetched in one call. VersionPager walks them newest-first in bounded
// windows:
//   - each window is a point read over [MinTimestamp, upper bound) capped at
//     min(remaining budget, page size) versions;
//   - the upper bound of the next window is the timestamp of the oldest cell
//     of the previous one, so windows never overlap;
//   - the end of the stream is inferred from a short read, or from reaching
//     the version budget or the lower timestamp bound. The store never
//     reports "no more data" itself.
//
// Key concepts
//   - DataRequest / ColumnRequest: what to read, including MaxVersions and
//     PageSize. A column is paged only when PageSize is set.
//   - VersionReader: the one capability the pager needs from a store.
//     MemoryStore, GormStore and ddbstore.Store implement it.
//   - SharedTable: a reference-counted table handle. A pager retains it once
//     when it is built and releases it once on Close.
//   - Page: an immutable snapshot of one window.
//   - VersionCursor: an opaque token that lets a later pager resume where an
//     earlier one stopped.
//
// A VersionPager is not safe for concurrent use.
package versionpager
