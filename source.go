package scandir

import (
	"io"
	"syscall"

	"github.com/pkg/errors"
)

// Source is the directory-scan primitive behind [Scan].
//
// ScanDir enumerates path once and returns one record per entry, in the
// order the OS reported them, with no sorting or filtering applied. On
// success ownership of every record and of the returned slice passes to the
// caller, which must give each record back through FreeEntry and the slice
// through FreeArray, exactly once each. On failure ScanDir releases anything
// it allocated itself and returns an error; an error carrying a
// syscall.Errno is reported to callers with that errno.
//
// [Scan] and the accessors built on it uphold the caller side of this
// contract on every exit path, so custom implementations only need to manage
// their own storage.
type Source interface {
	ScanDir(path string) ([]*Entry, error)
	FreeEntry(e *Entry)
	FreeArray(a []*Entry)
}

// dirSource is the default [Source]. It reads the directory through the
// platform backend (see io_contract.go) and lends out records from an
// entryPool.
type dirSource struct {
	pool *entryPool
}

var _ Source = (*dirSource)(nil)

func newDirSource(bufSize int) *dirSource {
	return &dirSource{pool: newEntryPool(bufSize)}
}

// defaultSource serves every call that does not set [WithSource] or
// [WithReadBufSize].
var defaultSource = newDirSource(dirReadBufSize)

// ScanDir implements [Source].
func (s *dirSource) ScanDir(path string) ([]*Entry, error) {
	if containsNUL(path) {
		return nil, errors.Wrap(syscall.EINVAL, "path contains NUL byte")
	}

	rh, err := openDirEnumerator(pathWithNul(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		closeErr := rh.closeHandle()
		if closeErr != nil {
			GetLogger().Printf("scandir: %s: %v", path, closeErr)
		}
	}()

	buf := s.pool.getBuf()
	defer s.pool.putBuf(buf)

	arr := s.pool.newArray()
	emit := func(d rawDirent) {
		e := s.pool.newEntry()
		e.fill(d)
		arr = append(arr, e)
	}

	for {
		err = readDirBatch(rh, *buf, emit)
		if err == nil {
			continue
		}

		if errors.Is(err, io.EOF) {
			return arr, nil
		}

		// The primitive cleans up its own partial allocation.
		s.release(arr)

		return nil, err
	}
}

// FreeEntry implements [Source].
func (s *dirSource) FreeEntry(e *Entry) {
	if e == nil {
		return
	}

	if !s.pool.freeEntry(e) {
		GetLogger().Printf("scandir: entry released twice or not owned by this source")
	}
}

// FreeArray implements [Source].
func (s *dirSource) FreeArray(a []*Entry) {
	s.pool.freeArray(a)
}

func (s *dirSource) release(arr []*Entry) {
	for _, e := range arr {
		s.FreeEntry(e)
	}

	s.FreeArray(arr)
}
