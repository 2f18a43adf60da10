// Package pool implements the circular, doubly-linked pool directory
// (spec.md §3, §4.3): each pool is a chunk obtained from the host
// allocator, formatted in place as a small header region followed by
// one free block covering the whole payload.
package pool

import (
	"github.com/nextfit-alloc/freelist/internal/block"
	"github.com/nextfit-alloc/freelist/internal/header"
	"github.com/nextfit-alloc/freelist/internal/word"
)

// Word offsets within a pool's header region, per spec.md §3:
//
//	word 0: pool payload wosize
//	words 1-2: prev / next pool pointers
//	word 3: filler
//	word 4: header of the pool's payload block
//	words 5..: payload
const (
	offWosize = 0
	offPrev   = 1
	offNext   = 2
	offFiller = 3
	offHeader = 4

	// HeaderWords is the number of words before the first payload word.
	HeaderWords = offHeader + 1
)

// Pool is a lightweight handle (a header pointer into the shared Heap) to
// one directory entry. Pool values are cheap to copy and compare by
// value; all state lives in the Heap.
type Pool struct{ hp block.Addr }

// At wraps an existing pool header pointer.
func At(hp block.Addr) Pool { return Pool{hp} }

// HP returns the pool's own header pointer (its identity in the directory).
func (p Pool) HP() block.Addr { return p.hp }

// Equal reports whether p and q name the same directory entry.
func (p Pool) Equal(q Pool) bool { return p.hp == q.hp }

// Wosize is the pool's payload wosize — by this port's convention,
// exactly the wosize of the single free block the pool contributes at
// birth (see DESIGN.md for why spec.md's own "pool_wosize - header + 1"
// phrasing is ambiguous and how this resolves it).
func (p Pool) Wosize(h *block.Heap) word.Wsize {
	return word.Wsize(h.Load(block.Field(p.hp, offWosize)))
}

func (p Pool) setWosize(h *block.Heap, n word.Wsize) {
	h.Store(block.Field(p.hp, offWosize), uint64(n))
}

// Prev returns the pool immediately before p in the directory.
func (p Pool) Prev(h *block.Heap) Pool {
	return Pool{block.Addr(h.Load(block.Field(p.hp, offPrev)))}
}

// Next returns the pool immediately after p in the directory.
func (p Pool) Next(h *block.Heap) Pool {
	return Pool{block.Addr(h.Load(block.Field(p.hp, offNext)))}
}

func (p Pool) setPrev(h *block.Heap, v Pool) { h.Store(block.Field(p.hp, offPrev), uint64(v.hp)) }
func (p Pool) setNext(h *block.Heap, v Pool) { h.Store(block.Field(p.hp, offNext), uint64(v.hp)) }

// PayloadHeader is the header pointer of the pool's birth block.
func (p Pool) PayloadHeader() block.Addr { return block.Field(p.hp, offHeader) }

// PayloadVal is the value pointer of the pool's birth block — the node
// add_block splices into the free list when the pool is created.
func (p Pool) PayloadVal() block.Addr { return block.ValOfHp(p.PayloadHeader()) }

// init formats a freshly host-allocated, zero-filled chunk as a
// self-linked pool contributing one BLUE block covering payloadWords.
func (p Pool) init(h *block.Heap, payloadWords word.Wsize) {
	p.setWosize(h, payloadWords)
	p.setPrev(h, p)
	p.setNext(h, p)
	block.WriteHeader(h, p.PayloadHeader(), header.Pack(payloadWords, header.Blue, 0))
}

// Directory is the pool directory: circular, doubly-linked, anchored at
// a static sentinel pool that carries no payload and is never itself
// handed out as allocatable memory (spec.md §4.3: "the directory is
// always non-empty").
type Directory struct {
	sentinel Pool
}

// NewDirectory reserves the sentinel pool record and returns an
// otherwise-empty directory.
func NewDirectory(h *block.Heap) *Directory {
	hp := h.Grow(make([]uint64, HeaderWords))
	s := Pool{hp}
	s.setPrev(h, s)
	s.setNext(h, s)
	s.setWosize(h, 0)
	return &Directory{sentinel: s}
}

// Sentinel returns the directory's anchor pool.
func (d *Directory) Sentinel() Pool { return d.sentinel }

// New formats already host-allocated words as a new pool. It does not
// insert the pool into any directory; callers splice it in with Append.
func New(h *block.Heap, words []uint64, payloadWords word.Wsize) Pool {
	hp := h.Grow(words)
	p := Pool{hp}
	p.init(h, payloadWords)
	return p
}

// InsertAfter splices right into the directory immediately after left,
// preserving circularity.
func (d *Directory) InsertAfter(h *block.Heap, left, right Pool) {
	rightNext := left.Next(h)
	right.setPrev(h, left)
	right.setNext(h, rightNext)
	rightNext.setPrev(h, right)
	left.setNext(h, right)
}

// Append inserts p at the tail of the directory (immediately before the
// sentinel), matching pool birth addresses always increasing.
func (d *Directory) Append(h *block.Heap, p Pool) {
	d.InsertAfter(h, d.sentinel.Prev(h), p)
}

// Each visits every real pool once, in directory order, skipping the sentinel.
func (d *Directory) Each(h *block.Heap, fn func(Pool)) {
	for cur := d.sentinel.Next(h); !cur.Equal(d.sentinel); cur = cur.Next(h) {
		fn(cur)
	}
}

// Count returns the number of real (non-sentinel) pools.
func (d *Directory) Count(h *block.Heap) int {
	n := 0
	d.Each(h, func(Pool) { n++ })
	return n
}
