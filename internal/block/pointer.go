package block

import "github.com/nextfit-alloc/freelist/internal/header"

// Field returns the address i words away from v. i may be negative, so
// that Field(v, -1) names a block's header slot and Field(v, -1) + 1
// names v itself again — the one-word offset the header/value pair
// always keeps (spec.md §4.2).
func Field(v Addr, i int64) Addr { return Addr(int64(v) + i) }

// ValOfHp returns the value pointer of the block whose header is at hp.
func ValOfHp(hp Addr) Addr { return Field(hp, 1) }

// HpOfVal returns the header pointer of the block whose value pointer is v.
func HpOfVal(v Addr) Addr { return Field(v, -1) }

// ReadHeader reads the header word stored at a header pointer.
func ReadHeader(h *Heap, hp Addr) header.Word { return header.Word(h.Load(hp)) }

// WriteHeader stores a header word at a header pointer.
func WriteHeader(h *Heap, hp Addr, w header.Word) { h.Store(hp, uint64(w)) }

// HeaderOf reads the header of the block whose value pointer is v.
func HeaderOf(h *Heap, v Addr) header.Word { return ReadHeader(h, HpOfVal(v)) }

// SetHeaderOf writes the header of the block whose value pointer is v.
func SetHeaderOf(h *Heap, v Addr, w header.Word) { WriteHeader(h, HpOfVal(v), w) }

// Next reads the link field of a free block: its first payload word,
// reinterpreted as a value pointer (or Null).
func Next(h *Heap, v Addr) Addr { return Addr(h.Load(Field(v, 0))) }

// SetNext writes the link field of a free block.
func SetNext(h *Heap, v Addr, n Addr) { h.Store(Field(v, 0), uint64(n)) }
