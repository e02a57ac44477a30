package alloc

import (
	"log"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Source is the memory system an allocator forwards its requests to.
type Source interface {
	Reserve(n int) []byte
	Release(b []byte)
}

// Heap takes memory from the Go heap, 8-byte aligned whatever the size.
// Release only drops the reference.
type Heap struct{}

func (Heap) Reserve(n int) []byte {
	if n == 0 {
		return nil
	}
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n)
}

func (Heap) Release(b []byte) {}

var PageSize = unix.Getpagesize()

// Mmap maps every request separately as anonymous private memory.
// Released regions are unmapped, so a stale address faults instead of
// silently reading reused bytes.
type Mmap struct{}

func (Mmap) Reserve(n int) []byte {
	if n == 0 {
		return nil
	}
	sz := (n + PageSize - 1) &^ (PageSize - 1)
	b, err := unix.Mmap(-1, 0, sz, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		log.Fatal(err)
	}
	return b[:n]
}

func (Mmap) Release(b []byte) {
	if cap(b) == 0 {
		return
	}
	if err := unix.Munmap(b[:cap(b)]); err != nil {
		log.Fatal(err)
	}
}
