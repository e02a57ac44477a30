package alloc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/allocdemo/alloc"
)

func TestPassthroughZero(t *testing.T) {
	var p alloc.Passthrough
	require.Equal(t, alloc.Nil, p.Alloc(0))
	require.Nil(t, p.GetPtr(alloc.Nil))
	p.Dealloc(alloc.Nil, 0)
	require.Equal(t, alloc.Stats{}, p.Stats())
}

func TestPassthrough(t *testing.T) {
	for _, src := range []alloc.Source{alloc.Heap{}, alloc.Mmap{}} {
		p := alloc.NewPassthrough(src)
		ti := alloc.For[int64](p)

		var ptrs []alloc.Ptr
		for i := 1; i <= 20; i++ {
			ptr := ti.Allocate(i)
			require.NotEqual(t, alloc.Nil, ptr)
			for j := 0; j < i; j++ {
				ti.Construct(ptr, j, int64(i*100+j))
			}
			ptrs = append(ptrs, ptr)
		}
		for i, ptr := range ptrs {
			n := i + 1
			for j, v := range ti.Slice(ptr, n) {
				require.Equal(t, int64(n*100+j), v)
			}
		}

		st := p.Stats()
		assert.Equal(t, 20, st.Allocs)
		assert.Equal(t, 8*20*21/2, st.TotalAlloc)
		assert.Equal(t, st.TotalAlloc, st.TotalLive)

		for i, ptr := range ptrs {
			ti.Deallocate(ptr, i+1)
		}
		st = p.Stats()
		assert.Equal(t, 20, st.Deallocs)
		assert.Equal(t, 0, st.TotalLive)
	}
}

func TestPassthroughDoubleFree(t *testing.T) {
	var p alloc.Passthrough
	ptr := p.Alloc(16)
	p.Dealloc(ptr, 16)
	require.Panics(t, func() { p.Dealloc(ptr, 16) })
	require.Panics(t, func() { p.GetPtr(ptr) })
	require.Panics(t, func() { p.GetPtr(ptr + 5) })
}

func TestPassthroughFreshMemory(t *testing.T) {
	var p alloc.Passthrough
	ti := alloc.For[int32](&p)
	a := ti.Allocate(4)
	for i := 0; i < 4; i++ {
		ti.Construct(a, i, -1)
	}
	ti.Deallocate(a, 4)

	b := ti.Allocate(4)
	require.Equal(t, []int32{0, 0, 0, 0}, ti.Slice(b, 4))
}
