package scandir

// Sink receives the values accepted by the pipeline, one at a time, in
// emission order. What Append does with them (keep order, de-duplicate,
// count) is up to the sink.
type Sink[V any] interface {
	Append(v V)
}

// SinkFunc adapts a function to a [Sink].
type SinkFunc[V any] func(v V)

// Append calls f(v).
func (f SinkFunc[V]) Append(v V) {
	f(v)
}

// SliceSink is a [Sink] that appends to a slice.
type SliceSink[V any] []V

// Append appends v.
func (s *SliceSink[V]) Append(v V) {
	*s = append(*s, v)
}

// SetSink is a [Sink] that inserts into a set. Duplicate values merge.
type SetSink[V comparable] map[V]struct{}

// Append inserts v.
func (s SetSink[V]) Append(v V) {
	s[v] = struct{}{}
}

// CollectInto scans path and appends every value accepted by the pipeline
// (see [Filter]) to dst.
//
// On a scan failure CollectInto returns the [*ScanError] and dst is left
// untouched. All records are released before CollectInto returns or
// unwinds, including when ef, x, vf or dst panics.
//
// nil filters accept everything. x must not be nil.
func CollectInto[V any](path string, dst Sink[V], x Extractor[V], vf ValueFilter[V], ef EntryFilter, opts ...Option) error {
	cfg := applyOptions(opts)

	res, err := scan(cfg.Source, path)
	if err != nil {
		return err
	}

	defer res.Close()

	for v := range Filter(res, x, vf, ef) {
		dst.Append(v)
	}

	return nil
}

// Values scans path and returns the accepted values of x in primitive order.
//
// On a scan failure Values returns (nil, [*ScanError]).
func Values[V any](path string, x Extractor[V], vf ValueFilter[V], ef EntryFilter, opts ...Option) ([]V, error) {
	cfg := applyOptions(opts)

	res, err := scan(cfg.Source, path)
	if err != nil {
		return nil, err
	}

	defer res.Close()

	out := make(SliceSink[V], 0, res.Len())
	for v := range Filter(res, x, vf, ef) {
		out.Append(v)
	}

	return out, nil
}

// Entries returns owned copies of the accepted entry records of path.
func Entries(path string, vf ValueFilter[Entry], ef EntryFilter, opts ...Option) ([]Entry, error) {
	return Values[Entry](path, Record, vf, ef, opts...)
}

// Names returns the accepted entry names of path.
func Names(path string, vf ValueFilter[string], ef EntryFilter, opts ...Option) ([]string, error) {
	return Values[string](path, Name, vf, ef, opts...)
}

// Serials returns the accepted file serial numbers (inode numbers) of path.
func Serials(path string, vf ValueFilter[uint64], ef EntryFilter, opts ...Option) ([]uint64, error) {
	return Values[uint64](path, Serial, vf, ef, opts...)
}
