// Package alloc2 is a bump allocator: requests are served from one
// contiguous arena by advancing a cursor. Regions are never returned
// individually; the whole arena is rewound with Reset or freed with Release.
package alloc2

import (
	"fmt"
	"log"
	"math"
	"unsafe"

	"github.com/funny-falcon/allocdemo/alloc"
)

// DefaultCapacity is the initial arena size, in elements, used by
// NewArenaFor when no positive capacity is given.
const DefaultCapacity = 10

const maxAlign = 8

// alignOf is the largest power of two dividing ln, at most maxAlign. Go type
// sizes are multiples of their alignment, so a region of ln bytes placed at a
// multiple of alignOf(ln) is aligned for any element it holds.
func alignOf(ln int) int {
	al := ln & -ln
	if al > maxAlign {
		al = maxAlign
	}
	return al
}

// Arena owns a single buffer taken from Source. When a request does not fit,
// the buffer is doubled until it does; only the used bytes are copied over.
// Handles stay valid across growth, addresses do not.
//
// The zero value is an empty arena on the Go heap.
type Arena struct {
	Source alloc.Source
	Log    string

	buf   []byte
	cur   int
	stats alloc.Stats
}

// NewArena reserves blockSize bytes from src (nil means alloc.Heap).
func NewArena(blockSize int, src alloc.Source) *Arena {
	if blockSize <= 0 {
		blockSize = DefaultCapacity * maxAlign
	}
	a := &Arena{Source: src}
	a.buf = a.source().Reserve(blockSize)
	return a
}

// NewArenaFor sizes the arena for capacity elements of T.
func NewArenaFor[T any](capacity int, src alloc.Source) *Arena {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	var x T
	return NewArena(capacity*int(unsafe.Sizeof(x)), src)
}

func (a *Arena) source() alloc.Source {
	if a.Source == nil {
		return alloc.Heap{}
	}
	return a.Source
}

// Alloc places ln bytes at the next offset aligned for them.
func (a *Arena) Alloc(ln int) alloc.Ptr {
	if ln == 0 {
		return alloc.Nil
	}
	al := alignOf(ln)
	res := (a.cur + al - 1) &^ (al - 1)
	if uint64(res+ln) >= math.MaxUint32 {
		panic("alloc2: arena exhausted")
	}
	if len(a.buf) < res+ln {
		a.grow(res + ln)
	}
	a.cur = res + ln
	a.stats.Add(ln)
	if a.Log != "" {
		log.Printf("%s alloc %d bytes at %d", a.Log, ln, res)
	}
	return alloc.Ptr(res + 1)
}

func (a *Arena) grow(need int) {
	ncap := len(a.buf)
	if ncap == 0 {
		ncap = maxAlign
	}
	for ncap < need {
		ncap *= 2
	}
	nbuf := a.source().Reserve(ncap)
	copy(nbuf, a.buf[:a.cur])
	a.source().Release(a.buf)
	a.buf = nbuf
	a.stats.Grows++
	if a.Log != "" {
		log.Printf("%s grow to %d bytes", a.Log, ncap)
	}
}

// Dealloc only accounts for the region; arena memory comes back on Reset.
func (a *Arena) Dealloc(ref alloc.Ptr, ln int) {
	if ref == alloc.Nil {
		return
	}
	if int(ref) > a.cur {
		panic(fmt.Sprintf("alloc2: pointer %d is outside of arena", ref))
	}
	a.stats.Sub(ln)
	if a.Log != "" {
		log.Printf("%s dealloc %d", a.Log, ref-1)
	}
}

func (a *Arena) GetPtr(ref alloc.Ptr) unsafe.Pointer {
	if ref == alloc.Nil {
		return nil
	}
	return unsafe.Pointer(&a.buf[ref-1])
}

// Len is the number of bytes handed out since the last Reset.
func (a *Arena) Len() int {
	return a.cur
}

func (a *Arena) Cap() int {
	return len(a.buf)
}

func (a *Arena) Stats() alloc.Stats {
	s := a.stats
	s.Capacity = len(a.buf)
	return s
}

// Reset invalidates every handle issued so far and keeps the buffer.
func (a *Arena) Reset() {
	a.cur = 0
	a.stats.TotalLive = 0
}

// Release gives the buffer back to its Source. The arena stays usable and
// starts growing from scratch.
func (a *Arena) Release() {
	a.source().Release(a.buf)
	a.buf = nil
	a.cur = 0
	a.stats.TotalLive = 0
}

// Clone copies the used part of the arena into a fresh buffer of the same
// capacity. Handles issued by a are valid in the clone.
func (a *Arena) Clone() *Arena {
	c := &Arena{Source: a.Source, Log: a.Log, cur: a.cur, stats: a.stats}
	c.buf = c.source().Reserve(len(a.buf))
	copy(c.buf, a.buf[:a.cur])
	return c
}

var _ alloc.Allocator = (*Arena)(nil)
