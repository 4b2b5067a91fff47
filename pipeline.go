package scandir

import "iter"

// Extractor maps a borrowed entry record to the value collected for it.
//
// Extractors must not retain e or anything aliasing its storage (such as
// [Entry.NameBorrowed]) past the call. They may be called any number of
// times, in any order, on any subset of entries.
type Extractor[V any] func(e *Entry) V

// EntryFilter decides whether an entry reaches the extractor.
type EntryFilter func(e *Entry) bool

// ValueFilter decides whether an extracted value is collected.
type ValueFilter[V any] func(v V) bool

// AcceptAll is the default for both filters: it accepts everything.
// A nil [EntryFilter] or [ValueFilter] behaves like AcceptAll.
func AcceptAll[T any](T) bool {
	return true
}

// Record extracts an owned copy of the whole entry.
func Record(e *Entry) Entry {
	return e.Clone()
}

// Name extracts the entry name.
func Name(e *Entry) string {
	return e.Name()
}

// Serial extracts the file serial number (inode number).
func Serial(e *Entry) uint64 {
	return e.Serial()
}

// Filter runs the pipeline over the records of r and yields the accepted
// values lazily, in primitive order.
//
// For each record still owned by r: ef is evaluated first, and a rejected
// record is released without x being called. Otherwise x extracts the value,
// the record is released, and vf decides whether the value is yielded. The
// order ef, x, vf is never changed.
//
// Records reached by the iteration are consumed: they are released whether
// or not their value is accepted. If the consumer stops early, the remaining
// records stay owned by r until [Result.Close].
//
// nil filters accept everything. x must not be nil.
func Filter[V any](r *Result, x Extractor[V], vf ValueFilter[V], ef EntryFilter) iter.Seq[V] {
	if vf == nil {
		vf = AcceptAll[V]
	}

	if ef == nil {
		ef = AcceptAll[*Entry]
	}

	return func(yield func(V) bool) {
		for i := range r.Len() {
			e := r.At(i)
			if e == nil {
				continue
			}

			if !ef(e) {
				r.release(i)

				continue
			}

			v := x(e)
			r.release(i)

			if !vf(v) {
				continue
			}

			if !yield(v) {
				return
			}
		}
	}
}
