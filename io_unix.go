//go:build unix && !linux

// io_unix.go implements the internal I/O backend contract (see io_contract.go)
// for non-Linux Unix platforms (macOS, the BSD family, solaris/illumos, aix).
//
// These platforms do not share a dirent layout, so enumeration goes through
// (*os.File).ReadDir, which hides "." and "..". The backend synthesizes the
// two dot entries before the first real entry so every platform reports the
// same set of names. Serial numbers come from fstatat(AT_SYMLINK_NOFOLLOW)
// relative to the open directory fd.
package scandir

import (
	"io"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const readDirBatchSize = 4096

// readdirHandle wraps a directory for enumeration.
//
// We store both:
//   - fd: used for fstatat
//   - f:  *os.File wrapper used for (*os.File).ReadDir
//
// Part of the internal I/O backend contract (see io_contract.go).
type readdirHandle struct {
	fd    int
	f     *os.File
	state *readdirState
}

type readdirState struct {
	dotsDone bool
}

// openDirEnumerator opens a directory for entry enumeration.
// path must include its trailing NUL terminator.
func openDirEnumerator(path nulTermPath) (readdirHandle, error) {
	p := path.String()

	for {
		fd, err := unix.Open(p, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if err == syscall.EINTR {
			continue
		}

		if err != nil {
			return readdirHandle{fd: -1}, err
		}

		f := os.NewFile(uintptr(fd), p)

		return readdirHandle{fd: fd, f: f, state: &readdirState{}}, nil
	}
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
//
// The first call emits "." and ".." before any entry ReadDir returns.
func readDirBatchImpl(rh readdirHandle, _ []byte, emit func(rawDirent)) error {
	if !rh.state.dotsDone {
		rh.state.dotsDone = true

		for _, dot := range [...]string{".", ".."} {
			emit(rawDirent{name: []byte(dot), ino: serialAt(rh.fd, dot), typ: TypeDir})
		}
	}

	entries, err := rh.f.ReadDir(readDirBatchSize)
	for _, e := range entries {
		name := e.Name()
		if isDotName(name) {
			continue
		}

		emit(rawDirent{
			name: []byte(name),
			ino:  serialAt(rh.fd, name),
			typ:  fileTypeOfMode(e.Type()),
		})
	}

	if err == nil {
		return nil
	}

	if err == io.EOF {
		return io.EOF
	}

	return errors.Wrap(err, "readdir")
}

// serialAt returns the inode number of name relative to dirfd, or 0 if it
// cannot be determined (racy entry, permissions, etc.).
func serialAt(dirfd int, name string) uint64 {
	var st unix.Stat_t

	for {
		err := unix.Fstatat(dirfd, name, &st, unix.AT_SYMLINK_NOFOLLOW)
		if err == syscall.EINTR {
			continue
		}

		if err != nil {
			return 0
		}

		break
	}

	return uint64(st.Ino) //nolint:unconvert // Ino is not uint64 on every platform
}
