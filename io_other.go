//go:build !unix && !plan9

// io_other.go implements the internal I/O backend contract (see io_contract.go)
// for platforms without a Unix syscall surface (windows, js, wasip1).
//
// plan9 is not supported: its syscall package has no Errno type, which
// ScanError is built on.
//
// This backend uses only portable stdlib APIs. These platforms have no inode
// numbers in their directory listings, so every serial number is 0. "." and
// ".." are synthesized like in io_unix.go.
package scandir

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const readDirBatchSize = 4096

// readdirHandle wraps a directory for enumeration.
//
// Part of the internal I/O backend contract (see io_contract.go).
type readdirHandle struct {
	f     *os.File
	state *readdirState
}

type readdirState struct {
	dotsDone bool
}

// openDirEnumerator opens a directory for entry enumeration.
// path must include its trailing NUL terminator.
func openDirEnumerator(path nulTermPath) (readdirHandle, error) {
	f, err := os.Open(path.String())
	if err != nil {
		return readdirHandle{}, err
	}

	return readdirHandle{f: f, state: &readdirState{}}, nil
}

func (h readdirHandle) closeHandle() error {
	if h.f == nil {
		return nil
	}

	err := h.f.Close()
	if err != nil {
		return errors.Wrap(err, "close readdir")
	}

	return nil
}

// readDirBatchImpl enumerates directory entries using (*os.File).ReadDir.
func readDirBatchImpl(rh readdirHandle, _ []byte, emit func(rawDirent)) error {
	entries, err := rh.f.ReadDir(readDirBatchSize)

	// ReadDir on a non-directory fails on the first call; report that before
	// emitting the synthesized dot entries.
	if !rh.state.dotsDone {
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "readdir")
		}

		rh.state.dotsDone = true

		emit(rawDirent{name: []byte("."), typ: TypeDir})
		emit(rawDirent{name: []byte(".."), typ: TypeDir})
	}

	for _, e := range entries {
		emit(rawDirent{name: []byte(e.Name()), typ: fileTypeOfMode(e.Type())})
	}

	if err == nil {
		return nil
	}

	if err == io.EOF {
		return io.EOF
	}

	return errors.Wrap(err, "readdir")
}
