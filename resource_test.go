package scandir_test

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gbansaghi/scandir"
)

// mockSource is a Source whose release calls are recorded by testify/mock.
type mockSource struct {
	mock.Mock
}

func (m *mockSource) ScanDir(path string) ([]*scandir.Entry, error) {
	args := m.Called(path)

	var entries []*scandir.Entry
	if names, ok := args.Get(0).([]string); ok {
		entries = make([]*scandir.Entry, 0, len(names))
		for i, name := range names {
			entries = append(entries, scandir.NewEntry(name, uint64(i+1), scandir.TypeRegular))
		}
	}

	return entries, args.Error(1)
}

func (m *mockSource) FreeEntry(e *scandir.Entry) {
	m.Called(e)
}

func (m *mockSource) FreeArray(a []*scandir.Entry) {
	m.Called(a)
}

func newMockSource(names ...string) *mockSource {
	m := &mockSource{}
	m.On("ScanDir", mock.Anything).Return(names, nil)
	m.On("FreeEntry", mock.Anything).Return()
	m.On("FreeArray", mock.Anything).Return()

	return m
}

func Test_Accessors_Release_Every_Record_And_Array_When_Called_N_Times(t *testing.T) {
	t.Parallel()

	names := []string{".", "..", "a", "b", "c"}
	src := newMockSource(names...)
	opt := scandir.WithSource(src)

	const n = 7

	for i := range n {
		var err error

		switch i % 4 {
		case 0:
			_, err = scandir.Names("d", nil, nil, opt)
		case 1:
			_, err = scandir.Serials("d", nil, scandir.SkipDots, opt)
		case 2:
			_, err = scandir.Entries("d", func(scandir.Entry) bool { return false }, nil, opt)
		default:
			err = scandir.CollectInto("d", scandir.SetSink[string]{}, scandir.Name, scandir.HasPrefix("a"), nil, opt)
		}

		require.NoError(t, err)
	}

	src.AssertNumberOfCalls(t, "ScanDir", n)
	src.AssertNumberOfCalls(t, "FreeEntry", n*len(names))
	src.AssertNumberOfCalls(t, "FreeArray", n)
}

func Test_Accessors_Release_Every_Record_When_Value_Filter_Panics(t *testing.T) {
	t.Parallel()

	names := []string{".", "..", "a", "b", "c", "d"}
	src := newMockSource(names...)

	const n = 5

	for range n {
		func() {
			defer func() {
				r := recover()
				require.Equal(t, "boom", r)
			}()

			_, _ = scandir.Names("d", func(v string) bool {
				if v == "b" {
					panic("boom")
				}

				return true
			}, nil, scandir.WithSource(src))

			t.Fatal("filter panic did not propagate")
		}()
	}

	src.AssertNumberOfCalls(t, "FreeEntry", n*len(names))
	src.AssertNumberOfCalls(t, "FreeArray", n)
}

func Test_Accessors_Release_Every_Record_When_Entry_Filter_Or_Extractor_Panics(t *testing.T) {
	t.Parallel()

	names := []string{"x", "y", "z"}
	src := newMockSource(names...)
	opt := scandir.WithSource(src)

	assert.Panics(t, func() {
		_, _ = scandir.Serials("d", nil, func(*scandir.Entry) bool { panic("entry filter") }, opt)
	})

	assert.Panics(t, func() {
		_, _ = scandir.Values("d", func(e *scandir.Entry) int {
			if e.Name() == "y" {
				panic("extractor")
			}

			return 0
		}, nil, nil, opt)
	})

	assert.Panics(t, func() {
		_ = scandir.CollectInto("d", scandir.SinkFunc[string](func(string) { panic("sink") }), scandir.Name, nil, nil, opt)
	})

	src.AssertNumberOfCalls(t, "FreeEntry", 3*len(names))
	src.AssertNumberOfCalls(t, "FreeArray", 3)
}

func Test_Accessors_Release_Nothing_When_Scan_Fails(t *testing.T) {
	t.Parallel()

	src := &mockSource{}
	src.On("ScanDir", "gone").Return(nil, syscall.ENOENT)

	_, err := scandir.Names("gone", nil, nil, scandir.WithSource(src))
	require.Error(t, err)
	assert.Equal(t, syscall.ENOENT, errnoOf(t, err))

	src.AssertExpectations(t)
	src.AssertNotCalled(t, "FreeEntry", mock.Anything)
	src.AssertNotCalled(t, "FreeArray", mock.Anything)
}

func Test_Accessors_Release_Empty_Array_When_Directory_Has_No_Entries(t *testing.T) {
	t.Parallel()

	src := newMockSource()

	names, err := scandir.Names("d", nil, nil, scandir.WithSource(src))
	require.NoError(t, err)
	assert.Empty(t, names)

	src.AssertNumberOfCalls(t, "FreeEntry", 0)
	src.AssertNumberOfCalls(t, "FreeArray", 1)
}

func Test_Result_Close_Releases_Each_Record_Once_When_Called_Repeatedly(t *testing.T) {
	t.Parallel()

	src := newMemSource("a", "b", "c", "d")

	res, err := scandir.Scan("d", scandir.WithSource(src))
	require.NoError(t, err)

	// Consume half through the pipeline, then close.
	var got []string
	for v := range scandir.Filter(res, scandir.Name, nil, nil) {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Nil(t, res.At(0))
	assert.NotNil(t, res.At(2))
	assert.Equal(t, 4, res.Len())

	res.Close()
	res.Close()

	assert.Nil(t, res.At(2))
	assert.Equal(t, "d", res.Path())
	src.assertBalanced(t)
}

func Test_Result_All_Skips_Released_Records_When_Pipeline_Consumed_Some(t *testing.T) {
	t.Parallel()

	src := newMemSource("a", "b", "c")

	res, err := scandir.Scan("d", scandir.WithSource(src))
	require.NoError(t, err)

	defer res.Close()

	for range scandir.Filter(res, scandir.Name, nil, func(e *scandir.Entry) bool { return e.Name() != "b" }) {
		break
	}

	var idx []int
	var names []string

	for i, e := range res.All() {
		idx = append(idx, i)
		names = append(names, e.Name())
	}

	assert.Equal(t, []int{1, 2}, idx)
	assert.Equal(t, []string{"b", "c"}, names)
}

func Test_Result_At_Panics_When_Index_Out_Of_Range_Whether_Open_Or_Closed(t *testing.T) {
	t.Parallel()

	src := newMemSource("a", "b")

	res, err := scandir.Scan("d", scandir.WithSource(src))
	require.NoError(t, err)

	assert.Panics(t, func() { res.At(2) })
	assert.Panics(t, func() { res.At(-1) })

	res.Close()

	assert.Nil(t, res.At(1))
	assert.Panics(t, func() { res.At(2) })
	src.assertBalanced(t)
}
