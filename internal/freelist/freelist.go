// Package freelist implements the sentinel-anchored, address-ordered
// singly-linked free list and its next-fit cursor (spec.md §3, §4.4).
//
// Adapted from the teacher's internal/wasm/allocator.go CustomAllocator
// next-fit fields (lastBlock): that implementation re-scans from
// lastBlock to the end, then from the beginning back to lastBlock, on
// every miss, without ever detecting that it has come all the way back
// around — it can revisit nodes and never terminates the way spec.md's
// "one full revolution" requires. scanFromCursor below is the corrected
// two-phase sweep: phase one walks from the cursor to the tail (and
// updates Last as it goes, since that is the only moment the true tail
// is known), phase two wraps to the sentinel and stops at the node the
// cursor already covers, guaranteeing every node is visited at most once.
package freelist

import (
	"github.com/nextfit-alloc/freelist/internal/block"
	"github.com/nextfit-alloc/freelist/internal/word"
)

// Item is one result of a free-list scan.
type Item struct {
	// ActualPrev is cur's true predecessor, which may be the sentinel.
	ActualPrev block.Addr
	Cur        block.Addr
}

// Prev is the user-visible predecessor: Null when the true predecessor
// is the sentinel, since the sentinel is never a dereferenceable block
// to an external caller. The list's mutators and the allocator façade
// use ActualPrev directly.
func (it Item) Prev(l *List) block.Addr {
	if it.ActualPrev == l.sentinel {
		return block.Null
	}
	return it.ActualPrev
}

// List is the free list itself.
type List struct {
	heap     *block.Heap
	sentinel block.Addr
	prev     block.Addr // nf_prev: the next-fit cursor, always in {sentinel} ∪ free blocks
	last     block.Addr // nf_last: highest-address free node, or == sentinel when empty
	curWsz   word.Wsize
}

// New reserves the sentinel node and returns an empty free list.
func New(h *block.Heap) *List {
	sentinel := h.Grow(make([]uint64, 1))
	return &List{heap: h, sentinel: sentinel, prev: sentinel, last: sentinel}
}

// Sentinel returns the list's fixed anchor node (spec.md's nf_head).
func (l *List) Sentinel() block.Addr { return l.sentinel }

// Head returns the lowest-address free block, or Null if the list is empty.
func (l *List) Head() block.Addr { return block.Next(l.heap, l.sentinel) }

// IsEmpty reports whether the list currently holds no free blocks.
func (l *List) IsEmpty() bool { return l.Head() == block.Null }

// Prev returns the next-fit cursor.
func (l *List) Prev() block.Addr { return l.prev }

// SetPrev moves the next-fit cursor.
func (l *List) SetPrev(a block.Addr) { l.prev = a }

// Last returns the highest-address free block, or the sentinel if empty.
func (l *List) Last() block.Addr { return l.last }

// SetLast updates the tracked tail.
func (l *List) SetLast(a block.Addr) { l.last = a }

// CurWsz is the running total of whsize(node.wosize) over every free node.
func (l *List) CurWsz() word.Wsize { return l.curWsz }

// AddWsz and SubWsz maintain the cur_wsz conservation invariant (I3); the
// allocator façade calls these exactly once per structural change.
func (l *List) AddWsz(w word.Wsize) { l.curWsz += w }
func (l *List) SubWsz(w word.Wsize) { l.curWsz -= w }

// LinkAfter splices val in directly after prev (prev may be the sentinel).
func (l *List) LinkAfter(prev, val block.Addr) {
	n := block.Next(l.heap, prev)
	block.SetNext(l.heap, val, n)
	block.SetNext(l.heap, prev, val)
}

// Unlink removes and returns the node immediately after prev.
func (l *List) Unlink(prev block.Addr) block.Addr {
	cur := block.Next(l.heap, prev)
	block.SetNext(l.heap, prev, block.Next(l.heap, cur))
	return cur
}

// scanFromCursor performs the next-fit sweep: start at the cursor, walk
// to the tail (recording the true tail into l.last along the way), then
// — if nothing matched — wrap to the sentinel and walk up to, but not
// including, the node the cursor already covers. Every node is visited
// at most once.
func (l *List) scanFromCursor(match func(prev, cur block.Addr) bool) (Item, bool) {
	p := l.prev
	for {
		cur := block.Next(l.heap, p)
		if cur == block.Null {
			l.last = p
			break
		}
		if match(p, cur) {
			return Item{ActualPrev: p, Cur: cur}, true
		}
		p = cur
	}

	stop := block.Next(l.heap, l.prev)
	for p := l.sentinel; ; {
		cur := block.Next(l.heap, p)
		if cur == block.Null || cur == stop {
			return Item{}, false
		}
		if match(p, cur) {
			return Item{ActualPrev: p, Cur: cur}, true
		}
		p = cur
	}
}

// FindNext is the next-fit search (spec.md §4.4): the first free node at
// or after the cursor whose wosize is at least wo, wrapping once.
func (l *List) FindNext(wo word.Wsize) (Item, bool) {
	return l.scanFromCursor(func(_, cur block.Addr) bool {
		return block.HeaderOf(l.heap, cur).Wosize() >= wo
	})
}

// ScanInsertPoint locates the adjacent pair {prev, cur} such that
// prev < val < cur, used by add_block and deallocate's middle-of-list
// insertion case.
func (l *List) ScanInsertPoint(val block.Addr) (Item, bool) {
	return l.scanFromCursor(func(prev, cur block.Addr) bool {
		return prev < val && val < cur
	})
}
