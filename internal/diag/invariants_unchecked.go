//go:build !checkinvariants

package diag

import (
	"github.com/nextfit-alloc/freelist/internal/block"
	"github.com/nextfit-alloc/freelist/internal/freelist"
	"github.com/nextfit-alloc/freelist/internal/pool"
)

// Checked mirrors the checkinvariants build tag; see invariants_checked.go.
const Checked = false

// CheckInvariants is a no-op unless built with -tags checkinvariants.
func CheckInvariants(*block.Heap, *freelist.List, *pool.Directory, *Dumper) error {
	return nil
}
