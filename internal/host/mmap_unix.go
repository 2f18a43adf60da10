//go:build unix

package host

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/nextfit-alloc/freelist/internal/word"
)

// Mmap is an Allocator backed by real anonymous private mappings. The
// order of the real addresses mmap returns does not matter to the
// engine: block.Heap assigns each chunk a monotonic logical address on
// Grow.
type Mmap struct {
	reserved uint64
	// kept alive so the GC never unmaps memory the Heap still indexes
	// by word; Munmap is intentionally never called during the
	// process lifetime, matching the teacher's wazero-backed Runtime,
	// which likewise never shrinks its linear memory.
	chunks [][]byte
}

// NewMmap returns an empty Mmap allocator.
func NewMmap() *Mmap { return &Mmap{} }

func (m *Mmap) Alloc(bytes uint64) ([]uint64, error) {
	if bytes == 0 {
		bytes = uint64(unix.Getpagesize())
	}
	pageSize := uint64(unix.Getpagesize())
	rounded := (bytes + pageSize - 1) / pageSize * pageSize

	b, err := unix.Mmap(-1, 0, int(rounded), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, &Error{Op: "mmap", Bytes: bytes, Message: err.Error()}
	}
	m.chunks = append(m.chunks, b)
	m.reserved += rounded

	n := rounded / word.Size
	words := unsafe.Slice((*uint64)(unsafe.Pointer(&b[0])), n)
	return words, nil
}

func (m *Mmap) Reserved() uint64 { return m.reserved }
