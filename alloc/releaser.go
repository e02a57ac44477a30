package alloc

// Releaser is implemented by anything owning allocator memory: containers,
// arenas, and element types that hold handles of their own. Typed.Destroy
// calls it on an element before zeroing the slot.
type Releaser interface {
	Release()
}

// ReleaseHolder collects owners of allocator memory so they can be freed
// together once their allocator is done with, in the order they were added.
// A nil holder ignores both calls.
type ReleaseHolder struct {
	R []Releaser
}

func (r *ReleaseHolder) Add(rr Releaser) {
	if r == nil {
		return
	}
	r.R = append(r.R, rr)
}

// Release frees every collected owner once; the holder is empty afterwards
// and can collect again.
func (r *ReleaseHolder) Release() {
	if r == nil {
		return
	}
	owners := r.R
	r.R = nil
	for _, rr := range owners {
		rr.Release()
	}
}
