package scandir

import "sync"

// Option configures [Scan] and the accessors built on it.
// Options are applied in order.
type Option func(*options)

// WithSource replaces the directory-scan primitive.
//
// The default reads the directory through the platform backend. A custom
// Source is useful to scan something that is not a local directory, or to
// instrument allocations in tests.
//
// If nil, the default is used.
func WithSource(src Source) Option {
	return func(o *options) {
		o.Source = src
	}
}

// WithReadBufSize sets the size of the buffer that directory records are read
// into (getdents64 on Linux). Larger buffers mean fewer syscalls for large
// directories.
//
// # Default
//
// 32KB. Values below 1KB are raised to 1KB; values <= 0 use the default.
//
// Ignored when [WithSource] supplies a custom Source.
func WithReadBufSize(n int) Option {
	return func(o *options) {
		o.ReadBufSize = n
	}
}

type options struct {
	// Source is the directory-scan primitive.
	Source Source
	// ReadBufSize is the dirent read buffer size of the default Source.
	ReadBufSize int
}

const (
	// dirReadBufSize is the default directory-entry read buffer size.
	dirReadBufSize = 32 * 1024

	// minReadBufSize keeps the buffer large enough for one maximal
	// linux_dirent64 record (19-byte header + 255-byte name, padded).
	minReadBufSize = 1024
)

// sizedSources holds one *dirSource per non-default buffer size, so repeated
// scans with the same size share a pool.
var sizedSources sync.Map

func sizedSource(bufSize int) *dirSource {
	if src, ok := sizedSources.Load(bufSize); ok {
		return src.(*dirSource)
	}

	src, _ := sizedSources.LoadOrStore(bufSize, newDirSource(bufSize))

	return src.(*dirSource)
}

// applyOptions merges option values and applies defaults.
func applyOptions(opts []Option) options {
	cfg := options{}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.Source != nil {
		return cfg
	}

	switch {
	case cfg.ReadBufSize <= 0 || cfg.ReadBufSize == dirReadBufSize:
		cfg.ReadBufSize = dirReadBufSize
		cfg.Source = defaultSource
	default:
		cfg.ReadBufSize = max(cfg.ReadBufSize, minReadBufSize)
		cfg.Source = sizedSource(cfg.ReadBufSize)
	}

	return cfg
}
