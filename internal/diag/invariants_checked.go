//go:build checkinvariants

package diag

import (
	"fmt"

	"github.com/nextfit-alloc/freelist/internal/block"
	"github.com/nextfit-alloc/freelist/internal/freelist"
	"github.com/nextfit-alloc/freelist/internal/header"
	"github.com/nextfit-alloc/freelist/internal/pool"
)

// Checked reports whether this build was compiled with -tags
// checkinvariants. The allocator façade calls CheckInvariants after
// every structural mutation only when this is true, so the checks
// never cost anything in production builds.
const Checked = true

// CheckInvariants walks the free list and pool directory and verifies
// I1-I4 from spec.md §7: every free node is BLUE, the list is strictly
// address-ordered with no NULL holes, cur_wsz matches the sum of
// whsize(wosize) over every node, and the cursor/tail both address live
// heap storage (or are the sentinel); it does not check that they are
// list members. On an ordering or color failure it dumps the cursor and
// its immediate neighbors through d before returning the error, the
// same "log what you were looking at, then fail" shape as the
// teacher's MemoryDebugger around out-of-bounds accesses.
func CheckInvariants(h *block.Heap, fl *freelist.List, dir *pool.Directory, d *Dumper) error {
	sum := uint64(0)
	prevAddr := fl.Sentinel()
	for cur := fl.Head(); cur != block.Null; cur = block.Next(h, cur) {
		if cur <= prevAddr && prevAddr != fl.Sentinel() {
			d.dumpAround(h, fl, cur)
			return fmt.Errorf("diag: free list out of address order at %d (prev %d)", cur, prevAddr)
		}
		hd := block.HeaderOf(h, cur)
		if hd.Color() != header.Blue {
			d.dumpAround(h, fl, cur)
			return fmt.Errorf("diag: free node %d has color %s, want blue", cur, hd.Color())
		}
		sum += uint64(hd.Wosize().Whsize())
		prevAddr = cur
	}
	if sum != uint64(fl.CurWsz()) {
		return fmt.Errorf("diag: cur_wsz mismatch: tracked %d, computed %d", fl.CurWsz(), sum)
	}

	cursor := fl.Prev()
	if cursor != fl.Sentinel() && !h.Contains(cursor) {
		return fmt.Errorf("diag: cursor %d does not address live heap storage", cursor)
	}
	last := fl.Last()
	if last != fl.Sentinel() && !h.Contains(last) {
		return fmt.Errorf("diag: tail %d does not address live heap storage", last)
	}

	n := 0
	dir.Each(h, func(pool.Pool) { n++ })
	if n == 0 {
		return fmt.Errorf("diag: pool directory unexpectedly empty")
	}
	return nil
}

func (d *Dumper) dumpAround(h *block.Heap, fl *freelist.List, cur block.Addr) {
	d.Errorf("invariant violation near %d: cursor=%d last=%d sentinel=%d",
		cur, fl.Prev(), fl.Last(), fl.Sentinel())
}
