package header

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nextfit-alloc/freelist/internal/word"
)

func TestPackRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		wosize word.Wsize
		color  Color
		tag    uint8
	}{
		{"zero wosize blue", 0, Blue, 0},
		{"allocated black", 42, Black, 7},
		{"large wosize", 1 << 20, Blue, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Pack(tt.wosize, tt.color, tt.tag)
			assert.Equal(t, tt.wosize, w.Wosize())
			assert.Equal(t, tt.color, w.Color())
			assert.Equal(t, tt.tag, w.Tag())
		})
	}
}

func TestWithColorPreservesRest(t *testing.T) {
	w := Pack(10, Blue, 3)
	w2 := w.WithColor(Black)
	assert.Equal(t, word.Wsize(10), w2.Wosize())
	assert.Equal(t, Black, w2.Color())
	assert.Equal(t, uint8(3), w2.Tag())
}

func TestWithWosizePreservesRest(t *testing.T) {
	w := Pack(10, Black, 3)
	w2 := w.WithWosize(20)
	assert.Equal(t, word.Wsize(20), w2.Wosize())
	assert.Equal(t, Black, w2.Color())
	assert.Equal(t, uint8(3), w2.Tag())
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "white", White.String())
	assert.Equal(t, "gray", Gray.String())
	assert.Equal(t, "blue", Blue.String())
	assert.Equal(t, "black", Black.String())
}
