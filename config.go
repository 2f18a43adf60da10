package freelist

import (
	"os"
	"strconv"

	"github.com/nextfit-alloc/freelist/internal/diag"
	"github.com/nextfit-alloc/freelist/internal/host"
	"github.com/nextfit-alloc/freelist/internal/word"
)

// defaultMinExpansionWords is the fallback minimum chunk size requested
// from the host allocator on a miss, expressed in words: 1 MiB worth of
// words on a 64-bit platform (spec.md §4.5.3).
var defaultMinExpansionWords = word.FromBytes(1 << 20)

// minExpansionWordsEnv overrides defaultMinExpansionWords, mirroring the
// teacher's wasm.Config pattern of letting an environment variable tune
// a runtime knob without a code change.
const minExpansionWordsEnv = "MIN_EXPANSION_WORDSIZE"

// Config controls an Allocator's behavior. The zero value is not
// ready to use; call DefaultConfig and override individual fields.
type Config struct {
	// MinExpansionWords is the minimum payload size, in words, that
	// expandHeap ever requests from Host, even when the triggering
	// allocation asked for less (spec.md §4.6).
	MinExpansionWords word.Wsize

	// Host supplies the raw memory each pool is carved from. Defaults
	// to a fresh host.Arena.
	Host host.Allocator

	// DiagLevel controls how much the allocator reports about itself.
	DiagLevel diag.Level
}

// DefaultConfig returns a Config with MinExpansionWords from
// MIN_EXPANSION_WORDSIZE if set and valid, else
// defaultMinExpansionWords, a fresh host.Arena, and diag.LevelErrors.
func DefaultConfig() Config {
	n := defaultMinExpansionWords
	if v := os.Getenv(minExpansionWordsEnv); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil && parsed > 0 {
			n = word.Wsize(parsed)
		}
	}
	return Config{
		MinExpansionWords: n,
		Host:              host.NewArena(),
		DiagLevel:         diag.LevelErrors,
	}
}
