package alloc_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/allocdemo/alloc"
)

type point struct {
	X, Y int32
	Tag  [4]byte
}

type counted struct {
	ID int32
}

var released []int32

func (c *counted) Release() {
	released = append(released, c.ID)
}

func TestTypedConstruct(t *testing.T) {
	ti := alloc.For[point](nil)
	require.Equal(t, 12, ti.Size())
	p := ti.Allocate(3)
	ti.Construct(p, 0, point{X: 1, Y: 2})
	ti.Construct(p, 2, point{X: 5, Y: 6, Tag: [4]byte{'a'}})
	require.Equal(t, point{X: 1, Y: 2}, *ti.At(p, 0))
	require.Equal(t, point{X: 5, Y: 6, Tag: [4]byte{'a'}}, *ti.At(p, 2))

	ti.At(p, 1).X = 9
	require.Equal(t, int32(9), ti.Slice(p, 3)[1].X)
	ti.Deallocate(p, 3)
}

func TestTypedDestroy(t *testing.T) {
	released = nil
	ti := alloc.For[counted](nil)
	p := ti.Allocate(2)
	ti.Construct(p, 0, counted{ID: 7})
	ti.Construct(p, 1, counted{ID: 8})
	ti.Destroy(p, 1)
	ti.Destroy(p, 0)
	require.Equal(t, []int32{8, 7}, released)
	require.Equal(t, []counted{{}, {}}, ti.Slice(p, 2))
	ti.Deallocate(p, 2)
}

func TestTypedRebind(t *testing.T) {
	var p alloc.Passthrough
	ints := alloc.For[int](&p)
	points := alloc.For[point](&p)

	a := ints.Allocate(1)
	b := points.Allocate(1)
	ints.Construct(a, 0, 42)
	points.Construct(b, 0, point{X: 3})
	require.Equal(t, 42, *ints.At(a, 0))
	require.Equal(t, int32(3), points.At(b, 0).X)
	require.Equal(t, 2, p.Stats().Allocs)
	require.Equal(t, 8+12, p.Stats().TotalLive)
}

func TestTypedRejectsPointers(t *testing.T) {
	require.Panics(t, func() { alloc.For[string](nil) })
	require.Panics(t, func() { alloc.For[*int](nil) })
	require.Panics(t, func() { alloc.For[[]int](nil) })
	require.Panics(t, func() { alloc.For[struct{ M map[int]int }](nil) })
	require.NotPanics(t, func() { alloc.For[[8]uint16](nil) })
}

func TestPointerFree(t *testing.T) {
	require.True(t, alloc.PointerFree(reflect.TypeOf(point{})))
	require.True(t, alloc.PointerFree(reflect.TypeOf([0]*int{})))
	require.False(t, alloc.PointerFree(reflect.TypeOf(struct {
		A int
		B interface{}
	}{})))
	require.False(t, alloc.PointerFree(reflect.TypeOf(func() {})))
}

func TestReleaseHolder(t *testing.T) {
	released = nil
	var h alloc.ReleaseHolder
	h.Add(&counted{ID: 1})
	h.Add(&counted{ID: 2})
	h.Release()
	h.Release()
	require.Equal(t, []int32{1, 2}, released)

	var nilHolder *alloc.ReleaseHolder
	nilHolder.Add(&counted{ID: 3})
	nilHolder.Release()
	require.Equal(t, []int32{1, 2}, released)

	h.Add(&counted{ID: 4})
	h.Release()
	require.Equal(t, []int32{1, 2, 4}, released)
	require.Empty(t, h.R)
}
