//go:build !scandir_testhooks

package scandir

func readDirBatch(rh readdirHandle, buf []byte, emit func(rawDirent)) error {
	return readDirBatchImpl(rh, buf, emit)
}

// Compile-time guard: wrapper signature must match the backend contract.
var _ func(readdirHandle, []byte, func(rawDirent)) error = readDirBatch
