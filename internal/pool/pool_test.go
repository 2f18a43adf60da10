package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextfit-alloc/freelist/internal/block"
	"github.com/nextfit-alloc/freelist/internal/header"
	"github.com/nextfit-alloc/freelist/internal/word"
)

func TestNewDirectoryIsSelfLinked(t *testing.T) {
	h := block.NewHeap()
	d := NewDirectory(h)

	s := d.Sentinel()
	assert.True(t, s.Equal(s.Next(h)))
	assert.True(t, s.Equal(s.Prev(h)))
	assert.Equal(t, 0, d.Count(h))
}

func TestNewPoolFormatsBirthBlock(t *testing.T) {
	h := block.NewHeap()
	p := New(h, make([]uint64, HeaderWords+10), 10)

	assert.Equal(t, word.Wsize(10), p.Wosize(h))
	hd := block.ReadHeader(h, p.PayloadHeader())
	assert.Equal(t, header.Blue, hd.Color())
	assert.Equal(t, word.Wsize(10), hd.Wosize())
}

func TestAppendMaintainsCircularity(t *testing.T) {
	h := block.NewHeap()
	d := NewDirectory(h)

	p1 := New(h, make([]uint64, HeaderWords+4), 4)
	p2 := New(h, make([]uint64, HeaderWords+4), 4)

	d.Append(h, p1)
	d.Append(h, p2)

	require.Equal(t, 2, d.Count(h))

	s := d.Sentinel()
	assert.True(t, s.Next(h).Equal(p1))
	assert.True(t, p1.Next(h).Equal(p2))
	assert.True(t, p2.Next(h).Equal(s))
	assert.True(t, p2.Prev(h).Equal(p1))
	assert.True(t, p1.Prev(h).Equal(s))
}

func TestEachVisitsInOrder(t *testing.T) {
	h := block.NewHeap()
	d := NewDirectory(h)

	p1 := New(h, make([]uint64, HeaderWords+4), 4)
	p2 := New(h, make([]uint64, HeaderWords+4), 4)
	d.Append(h, p1)
	d.Append(h, p2)

	var seen []Pool
	d.Each(h, func(p Pool) { seen = append(seen, p) })

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Equal(p1))
	assert.True(t, seen[1].Equal(p2))
}
