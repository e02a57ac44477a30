// Package alloc defines the allocator contract shared by the containers:
// byte regions addressed by handles, plus a typed view that constructs and
// destroys elements in place.
package alloc

import "unsafe"

// Ptr is a handle of an allocated region. Handles survive relocation of the
// underlying memory, raw addresses do not.
type Ptr uint32

const Nil Ptr = 0

type Allocator interface {
	// Alloc returns a region of ln bytes, or Nil when ln == 0.
	Alloc(ln int) Ptr
	// Dealloc gives back a region obtained from Alloc. ln is informational.
	Dealloc(ptr Ptr, ln int)
	// GetPtr resolves a handle. The address is valid until the next Alloc.
	GetPtr(ref Ptr) unsafe.Pointer
	Stats() Stats
}

type Stats struct {
	Allocs     int `json:"allocs"`
	Deallocs   int `json:"deallocs"`
	TotalAlloc int `json:"total_alloc"`
	TotalLive  int `json:"total_live"`
	Grows      int `json:"grows,omitempty"`
	Capacity   int `json:"capacity,omitempty"`
}

func (s *Stats) Add(n int) {
	s.Allocs++
	s.TotalAlloc += n
	s.TotalLive += n
}

func (s *Stats) Sub(n int) {
	s.Deallocs++
	s.TotalLive -= n
}
