package main

import (
	"fmt"

	nextfit "github.com/nextfit-alloc/freelist"
	"github.com/nextfit-alloc/freelist/internal/block"
	"github.com/nextfit-alloc/freelist/internal/word"
)

func main() {
	a := nextfit.NewAllocator(nextfit.DefaultConfig())

	var handles []block.Addr
	for _, words := range []word.Wsize{4, 16, 256, 1} {
		handles = append(handles, a.Allocate(words))
	}

	for _, hp := range handles[1:] {
		a.Deallocate(hp)
	}

	s := a.Stats()
	fmt.Printf("allocations=%d deallocations=%d bytes_from_host=%d\n",
		s.Allocations, s.Deallocations, s.BytesFromHost)
}
