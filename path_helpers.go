package scandir

import "strings"

// ============================================================================
// Path helpers
// ============================================================================

// nulTermPath is a path with a trailing NUL terminator, ready to be passed to
// syscalls that expect C strings.
type nulTermPath []byte

// String returns the path without its NUL terminator.
func (p nulTermPath) String() string {
	if len(p) > 0 && p[len(p)-1] == 0 {
		return string(p[:len(p)-1])
	}

	return string(p)
}

// pathWithNul converts a string path to a nulTermPath.
// The path is copied verbatim; no cleaning or normalization is applied.
func pathWithNul(s string) nulTermPath {
	b := make([]byte, 0, len(s)+1)
	b = append(b, s...)
	b = append(b, 0)

	return b
}

// containsNUL reports whether s cannot be represented as a C string.
func containsNUL(s string) bool {
	return strings.IndexByte(s, 0) >= 0
}

// nameLen returns the length of a d_name field, which ends at the first NUL
// byte or at the end of the record.
func nameLen(name []byte) int {
	for i, b := range name {
		if b == 0 {
			return i
		}
	}

	return len(name)
}

// isDotName reports whether name is "." or "..".
func isDotName[S ~string | ~[]byte](name S) bool {
	if len(name) == 1 && name[0] == '.' {
		return true
	}

	return len(name) == 2 && name[0] == '.' && name[1] == '.'
}
