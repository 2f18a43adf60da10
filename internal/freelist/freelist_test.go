package freelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextfit-alloc/freelist/internal/block"
	"github.com/nextfit-alloc/freelist/internal/header"
	"github.com/nextfit-alloc/freelist/internal/word"
)

func newNode(t *testing.T, h *block.Heap, wosize word.Wsize) block.Addr {
	t.Helper()
	hp := h.Grow(make([]uint64, wosize.Whsize()))
	block.WriteHeader(h, hp, header.Pack(wosize, header.Blue, 0))
	return block.ValOfHp(hp)
}

func TestNewListIsEmpty(t *testing.T) {
	h := block.NewHeap()
	l := New(h)

	assert.True(t, l.IsEmpty())
	assert.Equal(t, l.Sentinel(), l.Prev())
	assert.Equal(t, l.Sentinel(), l.Last())
}

func TestLinkAfterAndHead(t *testing.T) {
	h := block.NewHeap()
	l := New(h)
	v := newNode(t, h, 4)

	l.LinkAfter(l.Sentinel(), v)

	assert.False(t, l.IsEmpty())
	assert.Equal(t, v, l.Head())
}

func TestUnlink(t *testing.T) {
	h := block.NewHeap()
	l := New(h)
	v := newNode(t, h, 4)
	l.LinkAfter(l.Sentinel(), v)

	got := l.Unlink(l.Sentinel())

	assert.Equal(t, v, got)
	assert.True(t, l.IsEmpty())
}

func TestFindNextReturnsFirstBigEnough(t *testing.T) {
	h := block.NewHeap()
	l := New(h)
	small := newNode(t, h, 2)
	big := newNode(t, h, 10)

	l.LinkAfter(l.Sentinel(), small)
	l.LinkAfter(small, big)
	l.SetLast(big)

	item, ok := l.FindNext(5)
	require.True(t, ok)
	assert.Equal(t, big, item.Cur)
	assert.Equal(t, small, item.ActualPrev)
}

func TestFindNextWrapsOnceWithoutDuplicate(t *testing.T) {
	h := block.NewHeap()
	l := New(h)
	a := newNode(t, h, 2)
	big := newNode(t, h, 20)
	c := newNode(t, h, 2)

	l.LinkAfter(l.Sentinel(), a)
	l.LinkAfter(a, big)
	l.LinkAfter(big, c)
	l.SetLast(c)
	l.SetPrev(c) // cursor sits at the tail; the match only exists before it

	item, ok := l.FindNext(20)
	require.True(t, ok)
	assert.Equal(t, big, item.Cur)
	assert.Equal(t, a, item.ActualPrev)
}

func TestFindNextNoMatchReturnsFalse(t *testing.T) {
	h := block.NewHeap()
	l := New(h)
	a := newNode(t, h, 2)
	l.LinkAfter(l.Sentinel(), a)
	l.SetLast(a)

	_, ok := l.FindNext(100)
	assert.False(t, ok)
}

func TestScanInsertPoint(t *testing.T) {
	h := block.NewHeap()
	l := New(h)
	a := newNode(t, h, 2)
	c := newNode(t, h, 2)
	l.LinkAfter(l.Sentinel(), a)
	l.LinkAfter(a, c)
	l.SetLast(c)

	mid := block.Addr((uint64(a) + uint64(c)) / 2)
	if mid <= a {
		mid = a + 1
	}

	item, ok := l.ScanInsertPoint(mid)
	require.True(t, ok)
	assert.Equal(t, a, item.ActualPrev)
	assert.Equal(t, c, item.Cur)
}

func TestItemPrevHidesSentinel(t *testing.T) {
	h := block.NewHeap()
	l := New(h)
	a := newNode(t, h, 2)
	l.LinkAfter(l.Sentinel(), a)
	l.SetLast(a)

	item := Item{ActualPrev: l.Sentinel(), Cur: a}
	assert.Equal(t, block.Null, item.Prev(l))
}

func TestCurWszAccounting(t *testing.T) {
	h := block.NewHeap()
	l := New(h)

	l.AddWsz(5)
	l.AddWsz(3)
	assert.Equal(t, word.Wsize(8), l.CurWsz())

	l.SubWsz(3)
	assert.Equal(t, word.Wsize(5), l.CurWsz())
}
