package arena

import (
	"fmt"
	"unsafe"
)

// DefaultAlignment is the alignment of a block's base address and the
// default alignment of its regions (16 bytes).
const DefaultAlignment = 16

// Plain is the set of element types that may be stored in a block.
// None of them contain pointers, so the GC can treat the block as bytes.
type Plain interface {
	~uint8 | ~int8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Region is a byte range inside a block.
type Region struct {
	Offset int
	Len    int
}

// End returns the first byte offset after the region.
func (r Region) End() int { return r.Offset + r.Len }

// Layout plans the regions of a block.
type Layout struct {
	size   int
	wasted int
}

// Reserve appends a region of size bytes aligned to align (a power of two,
// at most DefaultAlignment; 0 means DefaultAlignment).
func (l *Layout) Reserve(size, align int) Region {
	if align <= 0 {
		align = DefaultAlignment
	}
	if align > DefaultAlignment || align&(align-1) != 0 {
		panic(fmt.Sprintf("arena: invalid alignment %d", align))
	}
	if size < 0 {
		panic(fmt.Sprintf("arena: negative region size %d", size))
	}
	offset := AlignUp(l.size, align)
	l.wasted += offset - l.size
	l.size = offset + size
	return Region{Offset: offset, Len: size}
}

// ReserveSlice appends a region holding n elements of T.
func ReserveSlice[T Plain](l *Layout, n int) Region {
	var zero T
	return l.Reserve(n*int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero)))
}

// Size returns the planned number of bytes.
func (l *Layout) Size() int { return l.size }

// Wasted returns the padding inserted for alignment.
func (l *Layout) Wasted() int { return l.wasted }

// AlignUp rounds n up to a multiple of align (a power of two).
func AlignUp(n, align int) int {
	mask := align - 1
	return (n + mask) & ^mask
}

// Block is one contiguous allocation.
type Block struct {
	buf       []byte // aligned view, len == planned size
	allocated int    // size of the underlying allocation
	used      int
	wasted    int
}

// New allocates a zeroed block for layout l.
func New(l *Layout) *Block {
	size := l.Size()
	if size == 0 {
		return &Block{}
	}
	// Over-allocate so that the base can be shifted to an aligned address.
	raw := make([]byte, size+DefaultAlignment)
	addr := uintptr(unsafe.Pointer(&raw[0])) //nolint:gosec // unsafe is required for memory alignment
	shift := int((DefaultAlignment - (addr & (DefaultAlignment - 1))) & (DefaultAlignment - 1))
	return &Block{
		buf:       raw[shift : shift+size : shift+size],
		allocated: len(raw),
		used:      size - l.Wasted(),
		wasted:    l.Wasted(),
	}
}

// Size returns the total number of bytes allocated for the block,
// including alignment slack.
func (b *Block) Size() int { return b.allocated }

// Used returns the bytes covered by regions.
func (b *Block) Used() int { return b.used }

// Bytes returns the raw bytes of region r.
func (b *Block) Bytes(r Region) []byte {
	b.check(r)
	return b.buf[r.Offset:r.End():r.End()]
}

// Slice reinterprets region r as a slice of T.
func Slice[T Plain](b *Block, r Region) []T {
	b.check(r)
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if r.Len%elem != 0 {
		panic(fmt.Sprintf("arena: region length %d is not a multiple of %d", r.Len, elem))
	}
	if r.Len == 0 {
		return nil
	}
	if r.Offset%int(unsafe.Alignof(zero)) != 0 {
		panic(fmt.Sprintf("arena: region offset %d is misaligned for element size %d", r.Offset, elem))
	}
	ptr := unsafe.Pointer(&b.buf[r.Offset])  //nolint:gosec // unsafe is required for typed regions
	return unsafe.Slice((*T)(ptr), r.Len/elem) //nolint:gosec // unsafe is required for typed regions
}

func (b *Block) check(r Region) {
	if r.Offset < 0 || r.Len < 0 || r.End() > len(b.buf) {
		panic(fmt.Sprintf("arena: region [%d,%d) out of range for block of %d bytes", r.Offset, r.End(), len(b.buf)))
	}
}

func (b *Block) String() string {
	return fmt.Sprintf("Block{allocated: %d B, used: %d B, wasted: %d B}", b.allocated, b.used, b.wasted)
}
