package alloc

import (
	"fmt"
	"log"
	"unsafe"
)

// Passthrough forwards every request to its Source: one Reserve per Alloc,
// one Release per Dealloc. Freed memory is never handed out again, only the
// handle slot is recycled. The zero value uses the Go heap.
type Passthrough struct {
	Source Source
	Log    string

	blocks [][]byte
	free   []Ptr
	stats  Stats
}

// Std is the default allocator used when a container is given none.
var Std = &Passthrough{}

func NewPassthrough(src Source) *Passthrough {
	return &Passthrough{Source: src}
}

func (p *Passthrough) source() Source {
	if p.Source == nil {
		return Heap{}
	}
	return p.Source
}

func (p *Passthrough) Alloc(ln int) Ptr {
	if ln == 0 {
		return Nil
	}
	b := p.source().Reserve(ln)
	var ref Ptr
	if n := len(p.free); n > 0 {
		ref = p.free[n-1]
		p.free = p.free[:n-1]
		p.blocks[ref-1] = b
	} else {
		p.blocks = append(p.blocks, b)
		ref = Ptr(len(p.blocks))
	}
	p.stats.Add(ln)
	if p.Log != "" {
		log.Printf("%s alloc %d bytes at %d", p.Log, ln, ref)
	}
	return ref
}

func (p *Passthrough) Dealloc(ref Ptr, ln int) {
	if ref == Nil {
		return
	}
	b := p.block(ref)
	p.blocks[ref-1] = nil
	p.free = append(p.free, ref)
	p.source().Release(b)
	p.stats.Sub(len(b))
	if p.Log != "" {
		log.Printf("%s dealloc %d", p.Log, ref)
	}
}

func (p *Passthrough) GetPtr(ref Ptr) unsafe.Pointer {
	if ref == Nil {
		return nil
	}
	return unsafe.Pointer(&p.block(ref)[0])
}

func (p *Passthrough) Stats() Stats {
	return p.stats
}

func (p *Passthrough) block(ref Ptr) []byte {
	if int(ref) > len(p.blocks) || p.blocks[ref-1] == nil {
		panic(fmt.Sprintf("alloc: pointer %d is not allocated", ref))
	}
	return p.blocks[ref-1]
}

var _ Allocator = (*Passthrough)(nil)
