package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextfit-alloc/freelist/internal/header"
)

func TestNewHeapReservesNull(t *testing.T) {
	h := NewHeap()
	assert.Equal(t, Addr(1), h.Len())
	assert.False(t, h.Contains(Null))
}

func TestGrowIsMonotonic(t *testing.T) {
	h := NewHeap()
	a := h.Grow(make([]uint64, 4))
	b := h.Grow(make([]uint64, 8))

	assert.Equal(t, Addr(1), a)
	assert.Equal(t, Addr(5), b)
	assert.True(t, b > a)
}

func TestLoadStore(t *testing.T) {
	h := NewHeap()
	base := h.Grow(make([]uint64, 4))

	h.Store(base+1, 0xdeadbeef)
	assert.Equal(t, uint64(0xdeadbeef), h.Load(base+1))
}

func TestLoadOutOfRangePanics(t *testing.T) {
	h := NewHeap()
	h.Grow(make([]uint64, 2))

	assert.Panics(t, func() { h.Load(Addr(100)) })
}

func TestHeaderRoundTrip(t *testing.T) {
	h := NewHeap()
	hp := h.Grow(make([]uint64, 1))

	w := header.Pack(5, header.Blue, 0)
	WriteHeader(h, hp, w)
	assert.Equal(t, w, ReadHeader(h, hp))
}

func TestValHpRoundTrip(t *testing.T) {
	v := Addr(100)
	require.Equal(t, Addr(99), HpOfVal(v))
	require.Equal(t, v, ValOfHp(HpOfVal(v)))
}

func TestNextLink(t *testing.T) {
	h := NewHeap()
	base := h.Grow(make([]uint64, 4))
	v := base + 1

	SetNext(h, v, Addr(777))
	assert.Equal(t, Addr(777), Next(h, v))
}

func TestHeaderOfUsesValuePointer(t *testing.T) {
	h := NewHeap()
	hp := h.Grow(make([]uint64, 2))
	v := ValOfHp(hp)

	w := header.Pack(1, header.Black, 9)
	SetHeaderOf(h, v, w)
	assert.Equal(t, w, HeaderOf(h, v))
}
