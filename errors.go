package freelist

import "fmt"

// AllocatorFault represents an unrecoverable allocator-path failure:
// a precondition violation, or a heap expansion that still yields no
// node large enough (spec.md §7 treats such failures as process-fatal,
// never recovered). This port's idiomatic analogue of "abort the
// process" is panic(*AllocatorFault). Detected invariant breaches panic
// with *InvariantError instead.
// Grounded on the teacher's BoundsError/PointerError shape: a Type
// discriminator plus a human Message and a small, purpose-specific set
// of numeric fields rather than a free-form map.
type AllocatorFault struct {
	Type    string
	Words   uint64
	Message string
}

func (e *AllocatorFault) Error() string {
	return fmt.Sprintf("allocator fault [%s]: %s (words=%d)", e.Type, e.Message, e.Words)
}

// HostError wraps a failure reported by the configured host.Allocator.
// Pool expansion failure is also fatal per spec.md §7; expandHeap
// panics with this type rather than returning it.
type HostError struct {
	Op      string
	Bytes   uint64
	Message string
}

func (e *HostError) Error() string {
	return fmt.Sprintf("host error [%s]: %s (bytes=%d)", e.Op, e.Message, e.Bytes)
}

// InvariantError reports a structural invariant violation detected by
// a checkinvariants build (spec.md §7).
type InvariantError struct {
	Invariant string
	Message   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation [%s]: %s", e.Invariant, e.Message)
}
