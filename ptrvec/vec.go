// Package ptrvec holds every element in its own allocator region and keeps
// only the handles in order.
package ptrvec

import (
	"fmt"
	"io"

	"github.com/funny-falcon/allocdemo/alloc"
)

type Vec[T any] struct {
	al    *alloc.Typed[T]
	elems []alloc.Ptr
}

func New[T any](al alloc.Allocator) *Vec[T] {
	return &Vec[T]{al: alloc.For[T](al)}
}

func (v *Vec[T]) Len() int {
	return len(v.elems)
}

func (v *Vec[T]) Push(x T) {
	p := v.al.Allocate(1)
	v.al.Construct(p, 0, x)
	v.elems = append(v.elems, p)
}

// Pop destroys and frees the last element. It reports false on an empty Vec.
func (v *Vec[T]) Pop() bool {
	n := len(v.elems)
	if n == 0 {
		return false
	}
	p := v.elems[n-1]
	v.al.Destroy(p, 0)
	v.al.Deallocate(p, 1)
	v.elems = v.elems[:n-1]
	return true
}

func (v *Vec[T]) At(i int) *T {
	return v.al.At(v.elems[i], 0)
}

func (v *Vec[T]) Get(i int) T {
	return *v.At(i)
}

func (v *Vec[T]) Each(f func(i int, x T) bool) {
	for i, p := range v.elems {
		if !f(i, *v.al.At(p, 0)) {
			return
		}
	}
}

func (v *Vec[T]) Release() {
	for v.Pop() {
	}
	v.elems = nil
}

func (v *Vec[T]) Display(w io.Writer) error {
	for i, p := range v.elems {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, *v.al.At(p, 0)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
