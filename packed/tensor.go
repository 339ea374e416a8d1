package packed

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/internal/arena"
	"github.com/hupe1980/tensorcore/internal/mappings"
	"github.com/hupe1980/tensorcore/value"
)

const headerMagic uint32 = 0x504d5430 // "PMT0"

// Header word positions.
const (
	hdrMagic = iota
	hdrNumMappings
	hdrNumDims
	hdrSubspaceSize
	hdrCellType
	headerWords
)

// Tensor is an immutable packed-mixed tensor. It implements both
// value.Value and value.Index.
type Tensor[T cell.Cell] struct {
	typ      value.Type
	block    *arena.Block
	header   []uint32
	mappings *mappings.PackedMappings
	cells    []T
}

var (
	_ value.Value = (*Tensor[float32])(nil)
	_ value.Index = (*Tensor[float32])(nil)
)

func newTensor[T cell.Cell](t value.Type, block *arena.Block, header []uint32, m *mappings.PackedMappings, cells []T) *Tensor[T] {
	if header[hdrMagic] != headerMagic {
		panic("packed: bad block header")
	}
	if int(header[hdrNumMappings]) != m.Size() || int(header[hdrNumDims]) != m.NumMappedDims() {
		panic(fmt.Sprintf("packed: header describes %d x %d mappings, table has %d x %d",
			header[hdrNumMappings], header[hdrNumDims], m.Size(), m.NumMappedDims()))
	}
	if m.Size()*int(header[hdrSubspaceSize]) != len(cells) {
		panic(fmt.Sprintf("packed: %d subspaces of %d cells do not match %d cells",
			m.Size(), header[hdrSubspaceSize], len(cells)))
	}
	return &Tensor[T]{typ: t, block: block, header: header, mappings: m, cells: cells}
}

// Type implements value.Value.
func (t *Tensor[T]) Type() value.Type { return t.typ }

// Cells implements value.Value.
func (t *Tensor[T]) Cells() cell.Ref { return cell.RefOf(t.cells) }

// Index implements value.Value.
func (t *Tensor[T]) Index() value.Index { return t }

// Size implements value.Index.
func (t *Tensor[T]) Size() int { return t.mappings.Size() }

// CreateView implements value.Index.
func (t *Tensor[T]) CreateView(dims []int) value.View {
	numDims := t.mappings.NumMappedDims()
	value.CheckViewDims(dims, numDims)
	switch {
	case len(dims) == 0:
		return &allMappingsView{mappings: t.mappings}
	case len(dims) == numDims:
		return newLookupView(t.mappings)
	default:
		return newIndexView(t.mappings, dims)
	}
}

// MemoryUsage implements value.Value. The allocation is the whole block,
// not just the Go header struct.
func (t *Tensor[T]) MemoryUsage() value.MemoryUsage {
	self := uint64(unsafe.Sizeof(*t)) + uint64(unsafe.Sizeof(*t.mappings))
	labels := t.mappings.LabelStore().MemoryUsage()
	return value.MemoryUsage{
		Allocated: self + labels + uint64(t.block.Size()),
		Used:      self + labels + uint64(t.block.Used()),
	}
}

// BlockSize returns the size of the single allocation holding the header,
// address table and cells.
func (t *Tensor[T]) BlockSize() int { return t.block.Size() }
