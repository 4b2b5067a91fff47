package scandir

// Export internal symbols for black-box tests in scandir_test.
var (
	DirReadBufSize = dirReadBufSize
	MinReadBufSize = minReadBufSize
)

// DefaultSourceLive reports the records and arrays the default source has on
// loan.
func DefaultSourceLive() (entries, arrays int64) {
	return defaultSource.pool.liveEntries.Load(), defaultSource.pool.liveArrays.Load()
}

// ReadBufSizeOf returns the dirent buffer size the options resolve to, or 0
// when a custom Source is configured.
func ReadBufSizeOf(opts ...Option) int {
	cfg := applyOptions(opts)

	src, ok := cfg.Source.(*dirSource)
	if !ok {
		return 0
	}

	return src.pool.bufSize
}

// UsesDefaultSource reports whether the options resolve to the shared
// default source.
func UsesDefaultSource(opts ...Option) bool {
	return applyOptions(opts).Source == Source(defaultSource)
}

// ResolvedSource returns the Source the options resolve to.
func ResolvedSource(opts ...Option) Source {
	return applyOptions(opts).Source
}

// SourceLive reports the records and arrays src has on loan, or (-1, -1)
// when src is not a directory source.
func SourceLive(src Source) (entries, arrays int64) {
	ds, ok := src.(*dirSource)
	if !ok {
		return -1, -1
	}

	return ds.pool.liveEntries.Load(), ds.pool.liveArrays.Load()
}
