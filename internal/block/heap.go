// Package block implements the engine's word-addressed virtual address
// space and the value/header pointer arithmetic described in spec.md
// §4.2: every block reference is a value pointer (the address of its
// first payload word); field(v, -1) names its header slot.
//
// Real pointers are deliberately not used here. The engine is modeled
// over a []uint64-backed Heap instead of raw unsafe.Pointer arithmetic,
// so that the free-list, pool-directory, and allocator-façade logic can
// be exercised and fuzzed without cgo or memory-unsafety — the same
// choice the teacher package makes by indexing a plain Go byte slice
// rather than real WASM linear memory.
package block

import "fmt"

// Addr is a word-indexed logical address into a Heap. The zero value,
// Null, never aliases a real block: word 0 of the address space is
// permanently reserved, so Null is safe to use as "no pointer".
type Addr uint64

// Null is the free-list's NULL link.
const Null Addr = 0

type segment struct {
	base  Addr
	words []uint64
}

// Heap is the engine's word-addressed virtual address space. It is
// backed by one or more host-allocated byte buffers reinterpreted as
// words. Addresses only ever grow: each call to Grow appends a new
// segment at the current tail, which is what lets the pool directory
// rely on monotonically increasing pool addresses (spec.md §9).
type Heap struct {
	segments []segment
	next     Addr
}

// NewHeap returns an empty heap with word 0 reserved as the permanent
// NULL address.
func NewHeap() *Heap {
	return &Heap{next: 1}
}

// Grow appends words as a new segment and returns its base address.
func (h *Heap) Grow(words []uint64) Addr {
	base := h.next
	h.segments = append(h.segments, segment{base: base, words: words})
	h.next += Addr(len(words))
	return base
}

func (h *Heap) locate(a Addr) (*segment, int) {
	for i := range h.segments {
		s := &h.segments[i]
		if a >= s.base && a < s.base+Addr(len(s.words)) {
			return s, int(a - s.base)
		}
	}
	panic(fmt.Sprintf("block: address %d out of range (heap size %d)", a, h.next))
}

// Load reads the word at a.
func (h *Heap) Load(a Addr) uint64 {
	s, i := h.locate(a)
	return s.words[i]
}

// Store writes the word at a.
func (h *Heap) Store(a Addr, v uint64) {
	s, i := h.locate(a)
	s.words[i] = v
}

// Len reports the number of words ever handed out, including the
// reserved null word.
func (h *Heap) Len() Addr { return h.next }

// Contains reports whether a currently addresses live heap storage.
func (h *Heap) Contains(a Addr) bool {
	for i := range h.segments {
		s := &h.segments[i]
		if a >= s.base && a < s.base+Addr(len(s.words)) {
			return true
		}
	}
	return false
}
