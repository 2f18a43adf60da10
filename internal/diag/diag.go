// Package diag implements leveled diagnostics for the engine, adapted
// from the teacher's internal/wasm/debug.go DebugLevel/MemoryDebugger:
// the same level ladder and "dump state before failing loudly" idea,
// retargeted from WASM memory regions to free-list/pool-directory
// structural dumps.
package diag

import (
	"fmt"
	"io"
	"os"
)

// Level controls how much the engine reports about its own structure.
type Level int

const (
	// LevelSilent emits nothing beyond returned errors.
	LevelSilent Level = iota
	// LevelErrors logs invariant violations and host allocator failures.
	LevelErrors
	// LevelVerbose additionally logs every pool birth.
	LevelVerbose
)

func (l Level) String() string {
	switch l {
	case LevelSilent:
		return "silent"
	case LevelErrors:
		return "errors"
	case LevelVerbose:
		return "verbose"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Dumper writes leveled diagnostic lines to an underlying writer,
// mirroring the teacher's MemoryDebugger's role as the sink every
// allocator-path log call goes through.
type Dumper struct {
	level Level
	out   io.Writer
}

// NewDumper returns a Dumper writing to os.Stderr at the given level.
func NewDumper(level Level) *Dumper {
	return &Dumper{level: level, out: os.Stderr}
}

// NewDumperTo returns a Dumper writing to an arbitrary writer, for tests.
func NewDumperTo(level Level, w io.Writer) *Dumper {
	return &Dumper{level: level, out: w}
}

// Level reports the dumper's configured level.
func (d *Dumper) Level() Level { return d.level }

// Errorf logs at LevelErrors or above.
func (d *Dumper) Errorf(format string, args ...any) {
	if d.level >= LevelErrors {
		fmt.Fprintf(d.out, "[error] "+format+"\n", args...)
	}
}

// Verbosef logs at LevelVerbose only.
func (d *Dumper) Verbosef(format string, args ...any) {
	if d.level >= LevelVerbose {
		fmt.Fprintf(d.out, "[trace] "+format+"\n", args...)
	}
}
