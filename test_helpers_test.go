package scandir_test

import (
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"testing"

	"github.com/gbansaghi/scandir"
)

const (
	windowsOS    = "windows"
	testFileName = "a.txt"
	missingDir   = "does-not-exist"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()

	fullPath := filepath.Join(root, rel)
	parent := filepath.Dir(fullPath)

	err := os.MkdirAll(parent, 0o750)
	if err != nil {
		t.Fatalf("mkdir %s: %v", parent, err)
	}

	err = os.WriteFile(fullPath, data, 0o600)
	if err != nil {
		t.Fatalf("write %s: %v", fullPath, err)
	}
}

func writeDir(t *testing.T, root, rel string) {
	t.Helper()

	err := os.MkdirAll(filepath.Join(root, rel), 0o750)
	if err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
}

func writeSymlink(t *testing.T, root, targetRel, linkRel string) {
	t.Helper()

	err := os.Symlink(filepath.Join(root, targetRel), filepath.Join(root, linkRel))
	if err != nil {
		t.Fatalf("symlink %s -> %s: %v", linkRel, targetRel, err)
	}
}

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)

	return out
}

func assertStringSlicesEqual(t *testing.T, got, want []string) {
	t.Helper()

	gotSorted := sorted(got)
	wantSorted := sorted(want)

	if len(gotSorted) != len(wantSorted) {
		t.Fatalf("slice length mismatch: got=%d want=%d (got=%v want=%v)", len(gotSorted), len(wantSorted), gotSorted, wantSorted)
	}

	for i := range gotSorted {
		if gotSorted[i] != wantSorted[i] {
			t.Fatalf("slice mismatch at %d: got=%v want=%v", i, gotSorted, wantSorted)
		}
	}
}

// memSource is an in-memory Source that counts every allocation and release.
type memSource struct {
	names []string
	err   error

	scans        int
	allocated    int
	freedEntries int
	freedArrays  int
	doubleFreed  int
	freed        map[*scandir.Entry]bool
}

func newMemSource(names ...string) *memSource {
	return &memSource{names: names, freed: make(map[*scandir.Entry]bool)}
}

func (s *memSource) ScanDir(string) ([]*scandir.Entry, error) {
	s.scans++

	if s.err != nil {
		return nil, s.err
	}

	arr := make([]*scandir.Entry, 0, len(s.names))
	for i, name := range s.names {
		arr = append(arr, scandir.NewEntry(name, uint64(i+1), scandir.TypeRegular))
	}

	s.allocated += len(arr)

	return arr, nil
}

func (s *memSource) FreeEntry(e *scandir.Entry) {
	if s.freed[e] {
		s.doubleFreed++

		return
	}

	s.freed[e] = true
	s.freedEntries++
}

func (s *memSource) FreeArray([]*scandir.Entry) {
	s.freedArrays++
}

func (s *memSource) assertBalanced(t *testing.T) {
	t.Helper()

	if s.freedEntries != s.allocated {
		t.Fatalf("entries: allocated=%d freed=%d", s.allocated, s.freedEntries)
	}

	if s.err == nil && s.freedArrays != s.scans {
		t.Fatalf("arrays: scans=%d freed=%d", s.scans, s.freedArrays)
	}

	if s.doubleFreed != 0 {
		t.Fatalf("double frees: %d", s.doubleFreed)
	}
}

// assertDefaultSourceBalanced fails if the default source still has records
// or arrays on loan. Tests calling it must not run in parallel with other
// users of the default source.
func assertDefaultSourceBalanced(t *testing.T) {
	t.Helper()

	entries, arrays := scandir.DefaultSourceLive()
	if entries != 0 || arrays != 0 {
		t.Fatalf("default source leaked: entries=%d arrays=%d", entries, arrays)
	}
}

func errnoOf(t *testing.T, err error) syscall.Errno {
	t.Helper()

	scanErr, ok := err.(*scandir.ScanError)
	if !ok {
		t.Fatalf("expected *ScanError, got %T (%v)", err, err)
	}

	return scanErr.Errno
}
