package freelist

import "sync/atomic"

// Stats holds running counters for an Allocator, kept as atomics so
// they can be read concurrently with allocation traffic without taking
// the allocator's structural lock — the same split the teacher's
// CustomAllocator makes between its atomic counters and its
// mutex-guarded block lists.
type Stats struct {
	allocations      atomic.Uint64
	deallocations    atomic.Uint64
	bytesAllocated   atomic.Uint64
	bytesFreed       atomic.Uint64
	expansions       atomic.Uint64
	bytesFromHost    atomic.Uint64
}

// Snapshot is a point-in-time copy of Stats, safe to log or compare.
type Snapshot struct {
	Allocations    uint64
	Deallocations  uint64
	BytesAllocated uint64
	BytesFreed     uint64
	Expansions     uint64
	BytesFromHost  uint64
}

// Snapshot copies the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Allocations:    s.allocations.Load(),
		Deallocations:  s.deallocations.Load(),
		BytesAllocated: s.bytesAllocated.Load(),
		BytesFreed:     s.bytesFreed.Load(),
		Expansions:     s.expansions.Load(),
		BytesFromHost:  s.bytesFromHost.Load(),
	}
}

func (s *Stats) recordAllocate(bytes uint64) {
	s.allocations.Add(1)
	s.bytesAllocated.Add(bytes)
}

func (s *Stats) recordDeallocate(bytes uint64) {
	s.deallocations.Add(1)
	s.bytesFreed.Add(bytes)
}

func (s *Stats) recordExpansion(bytes uint64) {
	s.expansions.Add(1)
	s.bytesFromHost.Add(bytes)
}

// Diagnostics reports the most recent pool expansion, mirroring the
// Rust source's global diagnostics fields (original_source/src/freelist/
// globals.rs): the start/end addresses of the last pool born and how
// many expansions have happened overall. Guarded by the allocator's
// structural mutex rather than kept atomic, since both addresses must
// be read together to describe one pool.
type Diagnostics struct {
	LastPoolStart uint64
	LastPoolEnd   uint64
	Expansions    uint64
}
