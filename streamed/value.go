package streamed

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/label"
	"github.com/hupe1980/tensorcore/value"
)

// Value is a tensor stored as flat cell and label arrays.
type Value[T cell.Cell] struct {
	typ   value.Type
	cells []T
	index *Index
}

var _ value.Value = (*Value[float32])(nil)

// NewValue wraps cells and labels without copying. labels holds
// numSubspaces addresses of t.NumMappedDimensions() labels each.
func NewValue[T cell.Cell](t value.Type, numMapped int, cells []T, numSubspaces int, labels []label.Label) *Value[T] {
	if numSubspaces*t.DenseSubspaceSize() != len(cells) {
		panic(fmt.Sprintf("streamed: %d subspaces of %d cells do not match %d cells",
			numSubspaces, t.DenseSubspaceSize(), len(cells)))
	}
	if numSubspaces*numMapped != len(labels) {
		panic(fmt.Sprintf("streamed: %d subspaces of %d labels do not match %d labels",
			numSubspaces, numMapped, len(labels)))
	}
	return &Value[T]{
		typ:   t,
		cells: cells,
		index: &Index{numMapped: numMapped, numSubspaces: uint32(numSubspaces), labels: labels},
	}
}

// Type implements value.Value.
func (v *Value[T]) Type() value.Type { return v.typ }

// Cells implements value.Value.
func (v *Value[T]) Cells() cell.Ref { return cell.RefOf(v.cells) }

// Index implements value.Value.
func (v *Value[T]) Index() value.Index { return v.index }

// MemoryUsage implements value.Value.
func (v *Value[T]) MemoryUsage() value.MemoryUsage {
	var zero T
	cellSize := uint64(unsafe.Sizeof(zero))
	labelSize := uint64(unsafe.Sizeof(label.Label{}))
	self := uint64(unsafe.Sizeof(*v)) + uint64(unsafe.Sizeof(*v.index))
	return value.MemoryUsage{
		Allocated: self + uint64(cap(v.cells))*cellSize + uint64(cap(v.index.labels))*labelSize,
		Used:      self + uint64(len(v.cells))*cellSize + uint64(len(v.index.labels))*labelSize,
	}
}

// Index is the unindexed address store of a streamed value. It only
// remembers the labels; every view scans them.
type Index struct {
	numMapped    int
	numSubspaces uint32
	labels       []label.Label
}

// Size implements value.Index.
func (x *Index) Size() int { return int(x.numSubspaces) }

// CreateView implements value.Index.
func (x *Index) CreateView(dims []int) value.View {
	value.CheckViewDims(dims, x.numMapped)
	stream := NewLabelBlockStream(x.numSubspaces, x.labels, x.numMapped)
	if len(dims) == 0 {
		return &iterationView{stream: stream}
	}
	return newFilterView(stream, x.numMapped, dims)
}
