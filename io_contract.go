package scandir

// ============================================================================
// Internal I/O backend contract
// ============================================================================
//
// dirSource.ScanDir (source.go) is written against a small set of unexported,
// platform-dependent functions and types. Each supported OS group provides
// them via build-tagged files:
//   - Linux fast path:                 io_linux.go
//   - Mainstream non-Linux Unix:       io_unix.go
//   - "Other" platforms (windows/etc): io_other.go
//
// This file contains no runtime dispatch. It uses compile-time assignments to
// document the required surface area and to make every build prove it
// provides it.
//
// Semantics expected by dirSource:
//
//   - openDirEnumerator receives the caller's path unmodified, NUL-terminated
//     (pathWithNul). It follows symlinks to directories, like scandir(3).
//
//   - readDirBatch reads the next run of entries and calls emit once per
//     entry, in the order the OS returned them, including "." and "..".
//     Backends whose native API hides the dot entries synthesize them first.
//     It returns io.EOF once the directory is exhausted.
//
//   - rawDirent.name is ephemeral (it may point into buf or another reusable
//     buffer). emit must copy it if it needs to retain it.
//
//   - Errors returned by openDirEnumerator and readDirBatch carry a
//     syscall.Errno somewhere in their chain whenever the OS reported one.

// Function signatures required by dirSource.
var (
	_ func(nulTermPath) (readdirHandle, error)           = openDirEnumerator
	_ func(readdirHandle, []byte, func(rawDirent)) error = readDirBatchImpl
)

// Method sets required by dirSource.
// This interface is only used for compile-time checking.
type ioReaddirHandle interface {
	closeHandle() error
}

var _ ioReaddirHandle = readdirHandle{}

// rawDirent is one directory record as produced by a backend, before it is
// copied into a pooled *Entry.
type rawDirent struct {
	name   []byte
	ino    uint64
	off    int64
	reclen uint16
	typ    FileType
}
