package alloc

import (
	"reflect"
	"unsafe"

	"github.com/modern-go/reflect2"
)

// Typed retargets a byte allocator at elements of type T. Any Allocator can
// be viewed as Typed for any number of element types at once, which is what
// containers with internal node types need.
//
// T must not contain pointers: allocator memory is invisible to the garbage
// collector and may be relocated bytewise.
type Typed[T any] struct {
	Al   Allocator
	typ  reflect2.Type
	size int
}

// For returns a typed view of al. A nil al means Std.
func For[T any](al Allocator) *Typed[T] {
	if al == nil {
		al = Std
	}
	typ := reflect2.TypeOfPtr((*T)(nil)).Elem()
	if !PointerFree(typ.Type1()) {
		panic("alloc: element type " + typ.String() + " contains pointers")
	}
	size := int(typ.Type1().Size())
	if size == 0 {
		size = 1
	}
	return &Typed[T]{Al: al, typ: typ, size: size}
}

func (t *Typed[T]) Size() int {
	return t.size
}

// Allocate returns uninitialized room for n elements, Nil for n == 0.
func (t *Typed[T]) Allocate(n int) Ptr {
	return t.Al.Alloc(n * t.size)
}

func (t *Typed[T]) Deallocate(p Ptr, n int) {
	t.Al.Dealloc(p, n*t.size)
}

// Construct initializes slot i of region p with v.
func (t *Typed[T]) Construct(p Ptr, i int, v T) {
	t.typ.UnsafeSet(t.slot(p, i), unsafe.Pointer(&v))
}

// Destroy releases the element in slot i if it is a Releaser, then zeroes it.
func (t *Typed[T]) Destroy(p Ptr, i int) {
	e := t.At(p, i)
	if r, ok := any(e).(Releaser); ok {
		r.Release()
	}
	var zero T
	*e = zero
}

// At resolves slot i of region p. No bounds are checked.
func (t *Typed[T]) At(p Ptr, i int) *T {
	return (*T)(t.slot(p, i))
}

// Slice resolves the first n slots of region p.
func (t *Typed[T]) Slice(p Ptr, n int) []T {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(t.Al.GetPtr(p)), n)
}

func (t *Typed[T]) slot(p Ptr, i int) unsafe.Pointer {
	return unsafe.Add(t.Al.GetPtr(p), i*t.size)
}

// PointerFree reports whether values of typ hold no references the garbage
// collector would have to see.
func PointerFree(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return typ.Len() == 0 || PointerFree(typ.Elem())
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			if !PointerFree(typ.Field(i).Type) {
				return false
			}
		}
		return true
	}
	return false
}
