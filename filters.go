package scandir

import "strings"

// SkipDots is an [EntryFilter] that rejects "." and "..".
func SkipDots(e *Entry) bool {
	return !e.IsDot()
}

// OfType returns an [EntryFilter] accepting entries whose type tag is one of
// types.
//
// Filesystems that do not fill d_type report [TypeUnknown] for every entry;
// include TypeUnknown to keep those.
func OfType(types ...FileType) EntryFilter {
	var set [256]bool
	for _, t := range types {
		set[t] = true
	}

	return func(e *Entry) bool {
		return set[e.Type()]
	}
}

// Not inverts an [EntryFilter]. A nil filter is treated as [AcceptAll].
func Not(ef EntryFilter) EntryFilter {
	if ef == nil {
		return func(*Entry) bool { return false }
	}

	return func(e *Entry) bool {
		return !ef(e)
	}
}

// AllOf returns an [EntryFilter] accepting entries accepted by every filter,
// evaluated left to right with short-circuit. nil filters are skipped.
func AllOf(filters ...EntryFilter) EntryFilter {
	return func(e *Entry) bool {
		for _, ef := range filters {
			if ef != nil && !ef(e) {
				return false
			}
		}

		return true
	}
}

// HasSuffix returns a [ValueFilter] for names ending with suffix.
// An empty suffix matches all names.
func HasSuffix(suffix string) ValueFilter[string] {
	return func(name string) bool {
		return strings.HasSuffix(name, suffix)
	}
}

// HasPrefix returns a [ValueFilter] for names starting with prefix.
// An empty prefix matches all names.
func HasPrefix(prefix string) ValueFilter[string] {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix)
	}
}
