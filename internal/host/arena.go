package host

import "github.com/nextfit-alloc/freelist/internal/word"

// Arena is a pure-Go Allocator: every chunk is a freshly made []uint64,
// so addresses are only monotonic because block.Heap assigns them that
// way on Grow, not because of anything Arena itself guarantees about
// backing storage. It is the default provider — used by cmd/allocdemo
// and by every test — since it needs no platform support and no cgo.
type Arena struct {
	reserved uint64
}

// NewArena returns an empty Arena.
func NewArena() *Arena { return &Arena{} }

func (a *Arena) Alloc(bytes uint64) ([]uint64, error) {
	n := bytes / word.Size
	if bytes%word.Size != 0 {
		n++
	}
	a.reserved += n * word.Size
	return make([]uint64, n), nil
}

func (a *Arena) Reserved() uint64 { return a.reserved }
