//go:build linux

package scandir

// io_linux.go implements the internal I/O backend contract (see io_contract.go)
// for Linux.
//
//   - The directory is opened with openat(AT_FDCWD, ...) on the caller's path.
//   - Entries are read with getdents64 into the caller-provided buffer and the
//     raw linux_dirent64 records are parsed in place; only the name bytes are
//     copied, into the pooled *Entry that emit fills.

import (
	"encoding/binary"
	"io"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// linux_dirent64 offsets (from linux/dirent.h):
//
//	struct linux_dirent64 {
//	    ino64_t        d_ino;    // 8 bytes  (offset 0)
//	    off64_t        d_off;    // 8 bytes  (offset 8)
//	    unsigned short d_reclen; // 2 bytes  (offset 16)
//	    unsigned char  d_type;   // 1 byte   (offset 18)
//	    char           d_name[]; // variable (offset 19)
//	};
const (
	direntInoOffset    = 0
	direntOffOffset    = 8
	direntReclenOffset = 16
	direntTypeOffset   = 18
	direntNameOffset   = 19
	direntMinSize      = direntNameOffset

	// atFDCWD is AT_FDCWD (-100) as a uintptr for use with syscall.Syscall6.
	atFDCWD = ^uintptr(0) - 99
)

var errInvalidDirent = errors.New("invalid dirent")

// readdirHandle wraps a directory fd for reading entries (getdents64).
//
// Part of the internal I/O backend contract (see io_contract.go).
type readdirHandle struct {
	fd int
}

// openDirEnumerator opens a directory for entry enumeration.
// path must include its trailing NUL terminator.
func openDirEnumerator(path nulTermPath) (readdirHandle, error) {
	if len(path) == 0 || path[len(path)-1] != 0 {
		return readdirHandle{fd: -1}, syscall.EINVAL
	}

	// Retry on EINTR without an upper bound, matching Go's standard library.
	for {
		fd, _, errno := syscall.Syscall6(
			syscall.SYS_OPENAT,
			atFDCWD,
			uintptr(unsafe.Pointer(&path[0])),
			uintptr(unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC|unix.O_LARGEFILE),
			0, 0, 0,
		)
		if errno == syscall.EINTR {
			continue
		}

		if errno != 0 {
			return readdirHandle{fd: -1}, errno
		}

		return readdirHandle{fd: int(fd)}, nil
	}
}

func (h readdirHandle) closeHandle() error {
	if h.fd < 0 {
		return nil
	}

	// We intentionally do not retry close(2) on EINTR.
	err := unix.Close(h.fd)
	if err != nil {
		return errors.Wrap(err, "close readdir")
	}

	return nil
}

// readDirBatchImpl reads one getdents64 batch into buf and calls emit for
// every record in it, in kernel order.
//
// Returns io.EOF once the directory is exhausted.
func readDirBatchImpl(rh readdirHandle, buf []byte, emit func(rawDirent)) error {
	var (
		read int
		err  error
	)
	for {
		read, err = unix.Getdents(rh.fd, buf)
		if err == syscall.EINTR {
			continue
		}

		break
	}

	if err != nil {
		return errors.Wrap(err, "getdents64")
	}

	if read <= 0 {
		return io.EOF
	}

	return parseDirents(buf[:read], emit)
}

// parseDirents walks the linux_dirent64 records packed in data.
func parseDirents(data []byte, emit func(rawDirent)) error {
	for len(data) > 0 {
		if len(data) < direntMinSize {
			return errInvalidDirent
		}

		reclen := int(binary.NativeEndian.Uint16(data[direntReclenOffset:]))
		if reclen < direntMinSize || reclen > len(data) {
			return errInvalidDirent
		}

		rec := data[:reclen]
		data = data[reclen:]

		name := rec[direntNameOffset:reclen]
		name = name[:nameLen(name)]

		if len(name) == 0 {
			continue
		}

		emit(rawDirent{
			name:   name,
			ino:    binary.NativeEndian.Uint64(rec[direntInoOffset:]),
			off:    int64(binary.NativeEndian.Uint64(rec[direntOffOffset:])),
			reclen: uint16(reclen),
			typ:    FileType(rec[direntTypeOffset]),
		})
	}

	return nil
}
