// Package scandir lists the entries of one directory and hands back either
// whole records or one field per record, filtered twice, into any container.
//
// # Ownership
//
// A directory scan allocates an array of entry records and lends it to the
// caller, who must release every record and then the array. [Scan] wraps that
// allocation in a [Result] which owns it; [Result.Close] releases everything
// that is still outstanding, exactly once. The accessors ([Names], [Serials],
// [Entries], [Values], [CollectInto]) close the Result on every exit path,
// including a panic raised by a caller-supplied filter or extractor, so they
// never leak records.
//
// Records passed to an [Extractor] or [EntryFilter] are borrowed. Values
// returned by the built-in extractors are owned copies and stay valid after
// the scan.
//
// # Pipeline
//
// For each entry, in the order the OS returned them:
//
//	entry filter ──false──► release, skip (extractor is not called)
//	     │ true
//	     ▼
//	extractor ──► release record ──► value filter ──false──► drop
//	                                      │ true
//	                                      ▼
//	                                 sink.Append
//
// Both filters default to [AcceptAll]; filtering with two defaults returns
// every entry in primitive order. Entries are not sorted. "." and ".." are
// reported like any other entry; use [SkipDots] to drop them.
//
// # Errors
//
// The only error returned is [*ScanError], when the directory cannot be
// opened or read. It carries the OS errno and its description. A failed scan
// returns no results at all.
//
// # Panics
//
// Panics in caller-supplied filters and extractors are not recovered by this
// package. They propagate to the caller after every record has been released.
//
// # Concurrency
//
// Each call performs one synchronous scan on the calling goroutine. There is
// no state shared between calls, so separate calls may run concurrently. A
// single [Result] must not be used from multiple goroutines.
package scandir

import (
	"fmt"
	"io/fs"
	"syscall"

	"github.com/pkg/errors"
)

// Scan calls the directory-scan primitive once for path and returns a
// [Result] that owns the allocated records. The caller must call
// [Result.Close] when done:
//
//	res, err := scandir.Scan(dir)
//	if err != nil {
//		return err
//	}
//	defer res.Close()
//
// path is passed to the OS unmodified. On failure Scan returns a
// [*ScanError] and nothing needs to be closed.
func Scan(path string, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)

	return scan(cfg.Source, path)
}

func scan(src Source, path string) (*Result, error) {
	entries, err := src.ScanDir(path)
	if err != nil {
		return nil, newScanError(path, err)
	}

	return newResult(src, path, entries), nil
}

// ScanError is returned when the directory-scan primitive fails.
type ScanError struct {
	// Path is the path passed to the scan, unmodified.
	Path string
	// Errno is the OS error number reported by the primitive. Causes that
	// carry no errno (e.g. a malformed directory record) are reported as EIO.
	Errno syscall.Errno
	// Err is the underlying error.
	Err error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scandir %s: %s", e.Path, e.Description())
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Code returns the OS error number.
func (e *ScanError) Code() int {
	return int(e.Errno)
}

// Description returns the OS description of the error number, as strerror(3)
// would.
func (e *ScanError) Description() string {
	return e.Errno.Error()
}

// Is reports whether target is the errno of e or the io/fs sentinel it maps
// to, so both errors.Is(err, syscall.ENOENT) and
// errors.Is(err, fs.ErrNotExist) hold for a missing directory.
func (e *ScanError) Is(target error) bool {
	if errno, ok := target.(syscall.Errno); ok {
		return errno == e.Errno
	}

	return e.Errno.Is(target)
}

// newScanError converts an error reported by a [Source] into a *ScanError.
// A *ScanError returned by the source is passed through unchanged.
func newScanError(path string, err error) *ScanError {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr
	}

	return &ScanError{Path: path, Errno: errnoOf(err), Err: err}
}

// errnoOf extracts the errno carried by err. Errors without one map to the
// errno matching their io/fs sentinel, or EIO.
func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return syscall.ENOENT
	case errors.Is(err, fs.ErrPermission):
		return syscall.EACCES
	case errors.Is(err, fs.ErrExist):
		return syscall.EEXIST
	case errors.Is(err, fs.ErrInvalid):
		return syscall.EINVAL
	default:
		return syscall.EIO
	}
}
