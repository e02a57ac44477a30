package vector

import (
	"fmt"
	"io"

	"github.com/funny-falcon/allocdemo/alloc"
)

// Array keeps exactly Len elements in one region; every Push moves them to a
// region one element larger.
type Array[T any] struct {
	al   *alloc.Typed[T]
	data alloc.Ptr
	size int
}

func New[T any](al alloc.Allocator) *Array[T] {
	return &Array[T]{al: alloc.For[T](al)}
}

func (a *Array[T]) Len() int {
	return a.size
}

func (a *Array[T]) Push(v T) {
	n := a.size
	ndata := a.al.Allocate(n + 1)
	for i := 0; i < n; i++ {
		a.al.Construct(ndata, i, *a.al.At(a.data, i))
	}
	a.al.Construct(ndata, n, v)
	// elements were moved, not copied: no Destroy for the old slots
	a.al.Deallocate(a.data, n)
	a.data = ndata
	a.size = n + 1
}

// At panics when i is out of range.
func (a *Array[T]) At(i int) *T {
	return &a.al.Slice(a.data, a.size)[i]
}

func (a *Array[T]) Get(i int) T {
	return *a.At(i)
}

func (a *Array[T]) Each(f func(i int, v T) bool) {
	for i := 0; i < a.size; i++ {
		if !f(i, *a.al.At(a.data, i)) {
			return
		}
	}
}

// Clone returns a copy with its own storage from the same allocator.
func (a *Array[T]) Clone() *Array[T] {
	c := &Array[T]{al: a.al}
	c.copyFrom(a)
	return c
}

// Assign replaces the contents of a with a copy of o.
func (a *Array[T]) Assign(o *Array[T]) {
	if a == o {
		return
	}
	a.Release()
	a.al = o.al
	a.copyFrom(o)
}

func (a *Array[T]) copyFrom(o *Array[T]) {
	if o.size == 0 {
		return
	}
	data := a.al.Allocate(o.size)
	for i := 0; i < o.size; i++ {
		a.al.Construct(data, i, *o.al.At(o.data, i))
	}
	a.data = data
	a.size = o.size
}

// Release destroys every element and frees the storage. The array is empty
// and usable afterwards.
func (a *Array[T]) Release() {
	for i := 0; i < a.size; i++ {
		a.al.Destroy(a.data, i)
	}
	a.al.Deallocate(a.data, a.size)
	a.data = alloc.Nil
	a.size = 0
}

func (a *Array[T]) Display(w io.Writer) error {
	for i := 0; i < a.size; i++ {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, *a.al.At(a.data, i)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
