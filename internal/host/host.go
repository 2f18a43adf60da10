// Package host abstracts the underlying byte allocator that supplies
// new pools to the engine (spec.md §4.6 "expand_heap"). It is grounded
// on the teacher's internal/runtime.Runtime, which wraps a wazero
// module instance as the source of linear memory; here the same seam
// is kept but the concrete providers are an in-process arena (default,
// used by tests and cmd/allocdemo) and a real mmap-backed allocator for
// production use on Unix hosts.
package host

import "fmt"

// Allocator is the seam between the engine and raw memory acquisition.
// Implementations must hand back chunks whose backing storage never
// moves. Their real addresses need not increase: block.Heap gives each
// chunk a logical address on Grow, and those logical addresses are the
// monotonic pool addresses the pool directory relies on (spec.md §9).
type Allocator interface {
	// Alloc reserves a zero-filled chunk of at least the given byte size
	// and returns it as a slice of words. An implementation may round
	// the size up (Arena to a whole word, Mmap to a whole page), so the
	// slice can hold more than bytes/word.Size words.
	Alloc(bytes uint64) ([]uint64, error)

	// Reserved reports the total bytes ever handed out.
	Reserved() uint64
}

// Error is returned by an Allocator when it cannot satisfy a request.
type Error struct {
	Op      string
	Bytes   uint64
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("host: %s failed for %d bytes: %s", e.Op, e.Bytes, e.Message)
}
