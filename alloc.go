// Package freelist implements a next-fit, address-ordered free-list
// heap allocator over a word-addressed logical memory space. It is a
// from-scratch engine built the way the teacher package builds its
// allocation subsystem — a façade type guarding mutable structural
// state behind a mutex, atomic counters for stats, typed errors, and a
// leveled diagnostics sink — wired to the engine's own internal/block,
// internal/header, internal/pool, and internal/freelist packages.
package freelist

import (
	"sync"

	"github.com/cznic/mathutil"

	"github.com/nextfit-alloc/freelist/internal/block"
	"github.com/nextfit-alloc/freelist/internal/diag"
	"github.com/nextfit-alloc/freelist/internal/freelist"
	"github.com/nextfit-alloc/freelist/internal/header"
	"github.com/nextfit-alloc/freelist/internal/pool"
	"github.com/nextfit-alloc/freelist/internal/word"
)

// Allocator is a single next-fit free-list heap. The zero value is not
// usable; construct one with NewAllocator.
type Allocator struct {
	mu    sync.Mutex
	heap  *block.Heap
	list  *freelist.List
	dir   *pool.Directory
	cfg   Config
	stats Stats
	dump  *diag.Dumper
	diags Diagnostics
}

// NewAllocator builds an empty allocator: no pools, an empty free
// list, ready to expand on first Allocate (spec.md §4.5.7 "Initial: no
// blocks").
func NewAllocator(cfg Config) *Allocator {
	heap := block.NewHeap()
	return &Allocator{
		heap: heap,
		list: freelist.New(heap),
		dir:  pool.NewDirectory(heap),
		cfg:  cfg,
		dump: diag.NewDumper(cfg.DiagLevel),
	}
}

// Stats returns a snapshot of the allocator's running counters.
func (a *Allocator) Stats() Snapshot {
	return a.stats.Snapshot()
}

// Diagnostics reports the most recent pool expansion's bounds and the
// total number of expansions so far.
func (a *Allocator) Diagnostics() Diagnostics {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.diags
}

// Allocate returns the value pointer of a freshly carved BLACK block
// with exactly wo words of payload (spec.md §4.5.1; this port treats
// "header pointer of the allocated block" there and "value pointer"
// in the §4.5.5 deallocate precondition as naming the same handle,
// since every other block reference in the design — merge's left and
// right, the free list's cur — is a value pointer).
//
// A precondition violation (wo < 1) or a host allocation failure
// during expansion is fatal per spec.md §7: both panic with an
// *AllocatorFault or *HostError rather than returning one, since the
// design defines no out-of-memory return path.
func (a *Allocator) Allocate(wo word.Wsize) block.Addr {
	if wo < 1 {
		panic(&AllocatorFault{Type: "invalid_argument", Words: uint64(wo), Message: "wo_sz must be >= 1"})
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	item, ok := a.list.FindNext(wo)
	if !ok {
		a.expandHeap(wo)
		item, ok = a.list.FindNext(wo)
		if !ok {
			panic(&AllocatorFault{Type: "expansion_insufficient", Words: uint64(wo),
				Message: "heap expansion did not yield a node large enough"})
		}
	}

	hp := a.consume(item, wo)
	a.stats.recordAllocate(wo.ToBytes())
	a.checkInvariants()
	return hp
}

// consume implements spec.md §4.5.2: split or fully consume the chosen
// free node, stamp the carved block's header, and fix up the free
// list's bookkeeping (cur_wsz, nf_last, nf_prev).
//
// offset = hd_wosize - wh_sz classifies the outcome:
//
//	offset == -1  exact fit: the whole node becomes the allocated block.
//	offset ==  0  undersplit: a one-word zero-wosize BLUE placeholder is
//	              left at the node's old header slot; the rest becomes
//	              the allocated block.
//	offset  >  0  proper split: the node shrinks in place to wosize
//	              offset and stays a free-list member; the tail becomes
//	              the allocated block.
func (a *Allocator) consume(item freelist.Item, wo word.Wsize) block.Addr {
	cur := item.Cur
	hdWosize := block.HeaderOf(a.heap, cur).Wosize()
	whSz := wo.Whsize()
	offset := int64(hdWosize) - int64(whSz)

	switch {
	case offset <= 0:
		if cur == a.list.Last() {
			a.list.SetLast(item.ActualPrev)
		}
		a.list.Unlink(item.ActualPrev)
		a.list.SubWsz(hdWosize.Whsize())
		if offset == 0 {
			block.WriteHeader(a.heap, block.Field(cur, -1), header.Pack(0, header.Blue, 0))
		}
	default:
		left := word.Wsize(offset)
		block.WriteHeader(a.heap, block.Field(cur, -1), block.HeaderOf(a.heap, cur).WithWosize(left))
		a.list.SubWsz(whSz)
	}

	a.list.SetPrev(item.ActualPrev)

	newHp := block.Field(cur, offset)
	newVal := block.Field(cur, offset+1)
	block.WriteHeader(a.heap, newHp, header.Pack(wo, header.Black, 0))
	return newVal
}

// expandHeap requests a new pool from the host allocator sized to
// satisfy at least request words, formats it, and splices its single
// free block into the free list (spec.md §4.5.3). A host allocation
// failure is treated as fatal (spec.md §7): expandHeap panics rather
// than returning an error.
func (a *Allocator) expandHeap(request word.Wsize) {
	payloadWords := a.cfg.MinExpansionWords
	if request >= a.cfg.MinExpansionWords {
		payloadWords = word.Wsize(mathutil.MaxInt64(int64(2*request), int64(a.cfg.MinExpansionWords)))
	}

	totalWords := payloadWords + word.Wsize(pool.HeaderWords)
	bytesNeeded := totalWords.ToBytes()
	roundedBytes := word.NextPow2Bytes(bytesNeeded)

	words, err := a.cfg.Host.Alloc(roundedBytes)
	if err != nil {
		a.dump.Errorf("host allocation failed: %v", err)
		panic(&HostError{Op: "alloc", Bytes: roundedBytes, Message: err.Error()})
	}

	actualPayload := word.FromBytes(uint64(len(words)) * word.Size) - word.Wsize(pool.HeaderWords)
	p := pool.New(a.heap, words, actualPayload)
	a.dir.Append(a.heap, p)
	a.addBlock(p.PayloadVal())

	a.stats.recordExpansion(roundedBytes)
	a.diags.LastPoolStart = uint64(p.HP())
	a.diags.LastPoolEnd = uint64(p.HP()) + uint64(len(words))
	a.diags.Expansions++
	a.dump.Verbosef("expanded heap: pool %d payload %d words", p.HP(), actualPayload)
}

// addBlock inserts val into the address-sorted free list without
// attempting any merge, since a freshly host-allocated pool can never
// be physically adjacent to existing blocks (spec.md §4.5.4).
func (a *Allocator) addBlock(val block.Addr) {
	wo := block.HeaderOf(a.heap, val).Wosize()

	if item, ok := a.list.ScanInsertPoint(val); ok {
		a.list.LinkAfter(item.ActualPrev, val)
	} else {
		a.list.LinkAfter(a.list.Last(), val)
		a.list.SetLast(val)
	}
	a.list.AddWsz(wo.Whsize())
}

// Deallocate returns a previously allocated block to the free list,
// attempting to coalesce it with address-adjacent neighbors (spec.md §4.5.5).
func (a *Allocator) Deallocate(val block.Addr) {
	a.mu.Lock()
	defer a.mu.Unlock()

	hd := block.HeaderOf(a.heap, val)
	wo := hd.Wosize()
	block.SetHeaderOf(a.heap, val, hd.WithColor(header.Blue))
	a.list.AddWsz(wo.Whsize())

	wasEmpty := a.list.IsEmpty()
	head := a.list.Head()

	switch {
	case !wasEmpty && val > a.list.Last():
		prevLast := a.list.Last()
		a.list.LinkAfter(prevLast, val)
		a.list.SetLast(val)
		if a.tryMerge(prevLast, val) {
			a.list.SetLast(prevLast)
		}

	case wasEmpty || val < head:
		a.list.LinkAfter(a.list.Sentinel(), val)
		if wasEmpty {
			a.list.SetLast(val)
		} else {
			a.tryMerge(val, head)
		}

	default:
		item, ok := a.list.ScanInsertPoint(val)
		if !ok {
			a.list.LinkAfter(a.list.Last(), val)
			a.list.SetLast(val)
			break
		}
		prev, cur := item.ActualPrev, item.Cur
		a.list.LinkAfter(prev, val)
		a.tryMerge(val, cur)
		a.tryMerge(prev, val)
	}

	a.stats.recordDeallocate(wo.ToBytes())
	a.checkInvariants()
}

// merge implements spec.md §4.5.6: tests physical adjacency between
// left and right and, if adjacent, unlinks right from the free list
// and absorbs it into left's wosize. Assumes right is list.Next(left)
// when adjacent, which always holds for an address-ordered list since
// no free node's address can fall strictly between two physically
// touching blocks.
func merge(h *block.Heap, l *freelist.List, left, right block.Addr) bool {
	lw := block.HeaderOf(h, left).Wosize()
	if block.Field(left, int64(lw)) != block.Field(right, -1) {
		return false
	}
	rw := block.HeaderOf(h, right).Wosize()
	l.Unlink(left)
	block.SetHeaderOf(h, left, header.Pack(lw+rw.Whsize(), header.Blue, 0))
	return true
}

// tryMerge wraps merge with the nf_last/nf_prev fixups the spec
// delegates to callers: if either pointer named right, it is
// repointed at left once right disappears.
func (a *Allocator) tryMerge(left, right block.Addr) bool {
	wasLast := a.list.Last() == right
	wasPrev := a.list.Prev() == right

	if !merge(a.heap, a.list, left, right) {
		return false
	}
	if wasLast {
		a.list.SetLast(left)
	}
	if wasPrev {
		a.list.SetPrev(left)
	}
	return true
}

func (a *Allocator) checkInvariants() {
	if !diag.Checked {
		return
	}
	if err := diag.CheckInvariants(a.heap, a.list, a.dir, a.dump); err != nil {
		panic(&InvariantError{Invariant: "structural", Message: err.Error()})
	}
}
