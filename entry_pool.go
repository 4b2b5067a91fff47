package scandir

import (
	"sync"
	"sync/atomic"
)

// ============================================================================
// entryPool: heap records and arrays handed out by dirSource
// ============================================================================
//
// A scan hands its caller an array of pointers to entry records. Every record
// and the array itself are on loan from this pool until the caller gives them
// back through Source.FreeEntry / Source.FreeArray.
//
// MEMORY LAYOUT after scanning a directory holding "a.txt":
//
//	array ([]*Entry, from arrays):
//	┌──────────┬──────────┬──────────┐
//	│ *Entry ● │ *Entry ● │ *Entry ● │
//	└────│─────┴────│─────┴────│─────┘
//	     ▼          ▼          ▼
//	  { "." }    { ".." }   { "a.txt" }   (records, from entries)
//
// Each record owns its name bytes. When a record is released its name
// capacity is kept, so steady-state scans of similar directories reuse the
// same backing arrays instead of allocating per entry.
//
// INVARIANT: live counts records and arrays currently on loan. Every scan
// path (success, primitive failure, consumer panic) must bring both counters
// back to where they started once the Result is closed.
type entryPool struct {
	entries sync.Pool
	arrays  sync.Pool
	bufs    sync.Pool

	bufSize int

	liveEntries atomic.Int64
	liveArrays  atomic.Int64
}

func newEntryPool(bufSize int) *entryPool {
	p := &entryPool{bufSize: bufSize}
	p.entries.New = func() any { return new(Entry) }
	p.arrays.New = func() any {
		a := make([]*Entry, 0, 64)

		return &a
	}
	p.bufs.New = func() any {
		b := make([]byte, p.bufSize)

		return &b
	}

	return p
}

// newEntry takes a record on loan.
func (p *entryPool) newEntry() *Entry {
	e, _ := p.entries.Get().(*Entry)
	e.live = true
	p.liveEntries.Add(1)

	return e
}

// freeEntry returns e to the pool. It reports false if e was not on loan.
func (p *entryPool) freeEntry(e *Entry) bool {
	if e == nil || !e.live {
		return false
	}

	e.live = false
	e.reset()
	p.liveEntries.Add(-1)
	p.entries.Put(e)

	return true
}

// newArray takes an empty array on loan.
func (p *entryPool) newArray() []*Entry {
	a, _ := p.arrays.Get().(*[]*Entry)
	p.liveArrays.Add(1)

	return (*a)[:0]
}

// freeArray returns a to the pool. Any records still referenced by a are not
// released here; the slots are cleared so the pool does not pin them.
func (p *entryPool) freeArray(a []*Entry) {
	if a == nil {
		return
	}

	clear(a[:cap(a)])
	a = a[:0]
	p.liveArrays.Add(-1)
	p.arrays.Put(&a)
}

// getBuf returns a dirent read buffer of bufSize bytes.
func (p *entryPool) getBuf() *[]byte {
	b, _ := p.bufs.Get().(*[]byte)

	return b
}

func (p *entryPool) putBuf(b *[]byte) {
	p.bufs.Put(b)
}
