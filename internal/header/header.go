// Package header implements the one-machine-word block header: bits
// 0..7 tag, bits 8..9 color, bits 10.. wosize.
package header

import (
	"fmt"

	"github.com/nextfit-alloc/freelist/internal/word"
)

// Color is the 2-bit GC color field. The free-list engine only ever
// produces Blue (free) and Black (allocated); White and Gray are carried
// in the type because the bit layout reserves them for future GC
// integration, not because this engine uses them.
type Color uint8

const (
	White Color = iota
	Gray
	Blue
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Gray:
		return "gray"
	case Blue:
		return "blue"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("color(%d)", uint8(c))
	}
}

const (
	tagBits     = 8
	tagMask     = 1<<tagBits - 1
	colorShift  = tagBits
	colorBits   = 2
	colorMask   = 1<<colorBits - 1
	wosizeShift = colorShift + colorBits
)

// Word is a packed block header.
type Word uint64

// Pack encodes a header word from its three fields.
func Pack(wosize word.Wsize, color Color, tag uint8) Word {
	return Word(uint64(wosize)<<wosizeShift | uint64(color&colorMask)<<colorShift | uint64(tag))
}

// Wosize extracts the payload word count.
func (w Word) Wosize() word.Wsize { return word.Wsize(uint64(w) >> wosizeShift) }

// Color extracts the 2-bit color field.
func (w Word) Color() Color { return Color((uint64(w) >> colorShift) & colorMask) }

// Tag extracts the 8-bit user tag.
func (w Word) Tag() uint8 { return uint8(uint64(w) & tagMask) }

// WithColor returns w with its color field replaced, wosize and tag unchanged.
func (w Word) WithColor(c Color) Word { return Pack(w.Wosize(), c, w.Tag()) }

// WithWosize returns w with its wosize field replaced, color and tag unchanged.
func (w Word) WithWosize(n word.Wsize) Word { return Pack(n, w.Color(), w.Tag()) }

func (w Word) String() string {
	return fmt.Sprintf("header{wosize:%d color:%s tag:%d}", w.Wosize(), w.Color(), w.Tag())
}
