package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_Reserve(t *testing.T) {
	var l Layout
	a := l.Reserve(3, 1)
	b := l.Reserve(8, 0)
	c := ReserveSlice[uint32](&l, 5)

	assert.Equal(t, Region{Offset: 0, Len: 3}, a)
	assert.Equal(t, Region{Offset: 16, Len: 8}, b)
	assert.Equal(t, Region{Offset: 24, Len: 20}, c)
	assert.Equal(t, 44, l.Size())
	assert.Equal(t, 13, l.Wasted())

	assert.Panics(t, func() { l.Reserve(1, 3) })
	assert.Panics(t, func() { l.Reserve(1, 32) })
	assert.Panics(t, func() { l.Reserve(-1, 1) })
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 0, AlignUp(0, 16))
	assert.Equal(t, 16, AlignUp(1, 16))
	assert.Equal(t, 16, AlignUp(16, 16))
	assert.Equal(t, 8, AlignUp(5, 4))
}

func TestBlock_TypedRegions(t *testing.T) {
	var l Layout
	header := ReserveSlice[uint32](&l, 3)
	table := l.Reserve(5, DefaultAlignment)
	cells := ReserveSlice[float64](&l, 4)

	b := New(&l)
	require.NotNil(t, b)
	assert.GreaterOrEqual(t, b.Size(), l.Size())
	assert.Equal(t, l.Size()-l.Wasted(), b.Used())

	base := uintptr(unsafe.Pointer(&b.Bytes(header)[0]))
	assert.Equal(t, uintptr(0), base%DefaultAlignment)

	h := Slice[uint32](b, header)
	require.Len(t, h, 3)
	h[0], h[1], h[2] = 1, 2, 3

	raw := b.Bytes(table)
	require.Len(t, raw, 5)
	for i := range raw {
		raw[i] = 0xFF
	}

	c := Slice[float64](b, cells)
	require.Len(t, c, 4)
	for i := range c {
		assert.Zero(t, c[i])
		c[i] = float64(i) + 0.5
	}

	// Regions never overlap.
	assert.Equal(t, []uint32{1, 2, 3}, Slice[uint32](b, header))
	assert.Equal(t, []float64{0.5, 1.5, 2.5, 3.5}, Slice[float64](b, cells))
}

func TestBlock_EmptyAndInvalid(t *testing.T) {
	var empty Layout
	b := New(&empty)
	assert.Equal(t, 0, b.Size())
	assert.Nil(t, Slice[float32](b, Region{}))

	var l Layout
	r := l.Reserve(6, 1)
	b = New(&l)
	assert.Panics(t, func() { Slice[uint32](b, r) })
	assert.Panics(t, func() { Slice[uint16](b, Region{Offset: 1, Len: 2}) })
	assert.Panics(t, func() { b.Bytes(Region{Offset: 4, Len: 8}) })
}
