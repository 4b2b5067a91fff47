package scandir

import (
	"fmt"
	"iter"
	"runtime"
)

// Result is the owning sequence of entry records produced by one scan.
//
// Records are indexed 0..Len()-1 in the order the primitive returned them.
// The Result owns every record and the array holding them until
// [Result.Close]; records handed out by [Result.At], [Result.All] and the
// pipeline are borrowed.
//
// A Result that becomes unreachable without being closed is released by a
// runtime cleanup and the leak is logged. Do not rely on that: close it.
type Result struct {
	path    string
	n       int
	owned   *ownedEntries
	cleanup runtime.Cleanup
}

// ownedEntries is the allocation owned by a Result. It is kept apart from
// the Result so the runtime cleanup can release it without keeping the
// Result reachable.
type ownedEntries struct {
	src     Source
	entries []*Entry
	closed  bool
}

func newResult(src Source, path string, entries []*Entry) *Result {
	r := &Result{
		path:  path,
		n:     len(entries),
		owned: &ownedEntries{src: src, entries: entries},
	}

	r.cleanup = runtime.AddCleanup(r, func(o *ownedEntries) {
		if o.closed {
			return
		}

		GetLogger().Printf("scandir: result for %q was not closed", path)
		o.releaseAll()
	}, r.owned)

	return r
}

// Path returns the path the Result was scanned from.
func (r *Result) Path() string {
	return r.path
}

// Len returns the number of entries reported by the primitive. It does not
// change as records are released.
func (r *Result) Len() int {
	return r.n
}

// At borrows record i. It returns nil if the record has already been
// released, either by the pipeline or by [Result.Close].
//
// i must be in [0, Len()); At panics otherwise, whether or not r is closed.
func (r *Result) At(i int) *Entry {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("scandir: index %d out of range [0, %d)", i, r.n))
	}

	if r.owned.closed {
		return nil
	}

	return r.owned.entries[i]
}

// All iterates over the records that have not been released yet, in
// primitive order, without consuming them.
func (r *Result) All() iter.Seq2[int, *Entry] {
	return func(yield func(int, *Entry) bool) {
		for i := range r.n {
			e := r.At(i)
			if e == nil {
				continue
			}

			if !yield(i, e) {
				return
			}
		}
	}
}

// Close releases every record that is still outstanding and then the array.
// It is safe to call more than once; only the first call releases.
func (r *Result) Close() {
	if r.owned.closed {
		return
	}

	r.cleanup.Stop()
	r.owned.releaseAll()
}

// release gives record i back to the source. Releasing an already released
// record is a no-op.
func (r *Result) release(i int) {
	o := r.owned
	if o.closed || o.entries[i] == nil {
		return
	}

	e := o.entries[i]
	o.entries[i] = nil
	o.src.FreeEntry(e)
}

func (o *ownedEntries) releaseAll() {
	o.closed = true

	for i, e := range o.entries {
		if e == nil {
			continue
		}

		o.entries[i] = nil
		o.src.FreeEntry(e)
	}

	entries := o.entries
	o.entries = nil
	o.src.FreeArray(entries)
}
