package scandir

import (
	"io/fs"
	"strings"
)

// FileType is the d_type tag of a directory entry.
//
// Values match the DT_* constants from dirent.h. Filesystems that do not
// fill d_type report [TypeUnknown].
type FileType uint8

const (
	TypeUnknown FileType = 0
	TypeFIFO    FileType = 1
	TypeChar    FileType = 2
	TypeDir     FileType = 4
	TypeBlock   FileType = 6
	TypeRegular FileType = 8
	TypeSymlink FileType = 10
	TypeSocket  FileType = 12
)

var fileTypeNames = map[FileType]string{
	TypeUnknown: "unknown",
	TypeFIFO:    "fifo",
	TypeChar:    "char",
	TypeDir:     "dir",
	TypeBlock:   "block",
	TypeRegular: "reg",
	TypeSymlink: "symlink",
	TypeSocket:  "socket",
}

func (t FileType) String() string {
	if s, ok := fileTypeNames[t]; ok {
		return s
	}

	return "unknown"
}

// ParseFileType parses the names returned by [FileType.String].
// "file" and "link" are accepted as aliases for "reg" and "symlink".
func ParseFileType(s string) (FileType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "file", "regular":
		return TypeRegular, true
	case "link", "lnk":
		return TypeSymlink, true
	case "directory":
		return TypeDir, true
	}

	for t, name := range fileTypeNames {
		if name == s {
			return t, true
		}
	}

	return TypeUnknown, false
}

// fileTypeOfMode maps the type bits of a fs.FileMode onto FileType.
// Used by backends whose native listing reports fs.FileMode instead of d_type.
func fileTypeOfMode(m fs.FileMode) FileType {
	switch {
	case m&fs.ModeSymlink != 0:
		return TypeSymlink
	case m.IsDir():
		return TypeDir
	case m&fs.ModeNamedPipe != 0:
		return TypeFIFO
	case m&fs.ModeSocket != 0:
		return TypeSocket
	case m&fs.ModeCharDevice != 0:
		return TypeChar
	case m&fs.ModeDevice != 0:
		return TypeBlock
	case m.IsRegular():
		return TypeRegular
	default:
		return TypeUnknown
	}
}

// Entry is one directory entry as returned by a directory scan.
//
// An *Entry handed to an [Extractor] or [EntryFilter] is borrowed from the
// [Result] that owns it: it is only valid during the call and must not be
// retained. Use [Entry.Clone] (or the [Record] extractor) for an owned copy.
//
// The zero value is an entry with an empty name.
type Entry struct {
	name   []byte
	serial uint64
	off    int64
	reclen uint16
	typ    FileType

	// live is true between allocation and release by a pooled Source.
	live bool
}

// NewEntry returns an owned entry. It is meant for custom [Source]
// implementations and tests; the offset and record length are zero.
func NewEntry(name string, serial uint64, typ FileType) *Entry {
	return &Entry{name: []byte(name), serial: serial, typ: typ}
}

// Name returns a copy of the entry name.
func (e *Entry) Name() string {
	return string(e.name)
}

// NameBorrowed returns the entry name without copying.
//
// The returned slice aliases the record's storage and is only valid while the
// record is owned (for example, during an [Extractor] call).
func (e *Entry) NameBorrowed() []byte {
	return e.name
}

// Serial returns the file serial number (inode number, d_ino).
func (e *Entry) Serial() uint64 {
	return e.serial
}

// Offset returns the platform-specific d_off value (0 where unavailable).
func (e *Entry) Offset() int64 {
	return e.off
}

// RecLen returns the on-disk record length reported by the OS (0 where
// unavailable).
func (e *Entry) RecLen() uint16 {
	return e.reclen
}

// Type returns the entry type tag.
func (e *Entry) Type() FileType {
	return e.typ
}

// IsDot reports whether the entry is "." or "..".
func (e *Entry) IsDot() bool {
	return isDotName(e.name)
}

// Clone returns an owned copy of e that stays valid after e is released.
func (e *Entry) Clone() Entry {
	return Entry{
		name:   append([]byte(nil), e.name...),
		serial: e.serial,
		off:    e.off,
		reclen: e.reclen,
		typ:    e.typ,
	}
}

func (e *Entry) String() string {
	return string(e.name)
}

// fill overwrites e with d, reusing e's name capacity.
func (e *Entry) fill(d rawDirent) {
	e.name = append(e.name[:0], d.name...)
	e.serial = d.ino
	e.off = d.off
	e.reclen = d.reclen
	e.typ = d.typ
}

// reset clears e for reuse. Name capacity is kept.
func (e *Entry) reset() {
	e.name = e.name[:0]
	e.serial = 0
	e.off = 0
	e.reclen = 0
	e.typ = TypeUnknown
}
