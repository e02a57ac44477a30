// Package ordmap is an ordered map whose nodes live in allocator memory.
//
// Nodes are linked by alloc.Ptr handles, so the map works on allocators that
// move their memory (alloc2.Arena). Keys and values must be pointer-free.
// A Map is not safe for concurrent mutation.
package ordmap

import (
	"cmp"

	"github.com/funny-falcon/allocdemo/alloc"
)

const maxHeight = 12

type node[K, V any] struct {
	key    K
	val    V
	height int32
	next   [maxHeight]alloc.Ptr
}

// Map is a skiplist ordered by compare.
type Map[K, V any] struct {
	al      *alloc.Typed[node[K, V]]
	compare func(a, b K) int
	head    alloc.Ptr
	height  int
	length  int
	rnd     uint32
}

func New[K cmp.Ordered, V any](al alloc.Allocator) *Map[K, V] {
	return NewFunc[K, V](al, cmp.Compare[K])
}

// NewFunc orders keys with compare, which returns a negative number, zero or
// a positive number like cmp.Compare.
func NewFunc[K, V any](al alloc.Allocator, compare func(a, b K) int) *Map[K, V] {
	return &Map[K, V]{
		al:      alloc.For[node[K, V]](al),
		compare: compare,
		height:  1,
		rnd:     0x9e3779b9,
	}
}

func (m *Map[K, V]) Len() int {
	return m.length
}

func (m *Map[K, V]) node(p alloc.Ptr) *node[K, V] {
	return m.al.At(p, 0)
}

func (m *Map[K, V]) init() {
	if m.head != alloc.Nil {
		return
	}
	m.head = m.al.Allocate(1)
	m.al.Construct(m.head, 0, node[K, V]{height: maxHeight})
}

// seek returns the node holding key, or Nil. When preds is given it receives
// the last node before key on every level.
func (m *Map[K, V]) seek(key K, preds *[maxHeight]alloc.Ptr) alloc.Ptr {
	x := m.head
	for lvl := m.height - 1; lvl >= 0; lvl-- {
		for {
			next := m.node(x).next[lvl]
			if next == alloc.Nil || m.compare(m.node(next).key, key) >= 0 {
				break
			}
			x = next
		}
		if preds != nil {
			preds[lvl] = x
		}
	}
	next := m.node(x).next[0]
	if next != alloc.Nil && m.compare(m.node(next).key, key) == 0 {
		return next
	}
	return alloc.Nil
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	if m.head != alloc.Nil {
		if p := m.seek(key, nil); p != alloc.Nil {
			return m.node(p).val, true
		}
	}
	var zero V
	return zero, false
}

// Set inserts key or overwrites its value.
func (m *Map[K, V]) Set(key K, val V) {
	m.init()
	var preds [maxHeight]alloc.Ptr
	if p := m.seek(key, &preds); p != alloc.Nil {
		m.node(p).val = val
		return
	}
	h := m.randomHeight()
	for ; m.height < h; m.height++ {
		preds[m.height] = m.head
	}
	p := m.al.Allocate(1)
	m.al.Construct(p, 0, node[K, V]{key: key, val: val, height: int32(h)})
	// resolve only after Allocate: it may have moved the memory
	n := m.node(p)
	for lvl := 0; lvl < h; lvl++ {
		pred := m.node(preds[lvl])
		n.next[lvl] = pred.next[lvl]
		pred.next[lvl] = p
	}
	m.length++
}

func (m *Map[K, V]) Delete(key K) bool {
	if m.head == alloc.Nil {
		return false
	}
	var preds [maxHeight]alloc.Ptr
	p := m.seek(key, &preds)
	if p == alloc.Nil {
		return false
	}
	n := m.node(p)
	for lvl := 0; lvl < int(n.height); lvl++ {
		m.node(preds[lvl]).next[lvl] = n.next[lvl]
	}
	m.al.Destroy(p, 0)
	m.al.Deallocate(p, 1)
	for m.height > 1 && m.node(m.head).next[m.height-1] == alloc.Nil {
		m.height--
	}
	m.length--
	return true
}

// Range calls f in ascending key order until it returns false. f must not
// modify the map.
func (m *Map[K, V]) Range(f func(key K, val V) bool) {
	if m.head == alloc.Nil {
		return
	}
	for p := m.node(m.head).next[0]; p != alloc.Nil; {
		n := m.node(p)
		key, val, next := n.key, n.val, n.next[0]
		if !f(key, val) {
			return
		}
		p = next
	}
}

// Release frees every node. The map is empty and usable afterwards.
func (m *Map[K, V]) Release() {
	if m.head == alloc.Nil {
		return
	}
	for p := m.node(m.head).next[0]; p != alloc.Nil; {
		next := m.node(p).next[0]
		m.al.Destroy(p, 0)
		m.al.Deallocate(p, 1)
		p = next
	}
	m.al.Deallocate(m.head, 1)
	m.head = alloc.Nil
	m.height = 1
	m.length = 0
}

// randomHeight draws from a geometric distribution with p = 1/4.
func (m *Map[K, V]) randomHeight() int {
	h := 1
	for h < maxHeight {
		m.rnd ^= m.rnd << 13
		m.rnd ^= m.rnd >> 17
		m.rnd ^= m.rnd << 5
		if m.rnd&3 != 0 {
			break
		}
		h++
	}
	return h
}
