package value

import (
	"fmt"

	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/label"
)

// Value is an immutable tensor.
//
// Invariant: Cells().Len() == Index().Size() * Type().DenseSubspaceSize().
type Value interface {
	Type() Type
	Cells() cell.Ref
	Index() Index
	MemoryUsage() MemoryUsage
}

// Index maps sparse addresses to subspace indexes for one Value.
// An Index is safe for concurrent use; the views it creates are not.
type Index interface {
	// Size returns the number of subspaces.
	Size() int
	// CreateView returns a view filtering on the given mapped dimension
	// positions, which must be strictly increasing.
	CreateView(dims []int) View
}

// View iterates the subspaces of an Index matching a lookup target.
type View interface {
	// Lookup restarts the view. addr holds one label per filtered dimension.
	Lookup(addr []label.Label)
	// Next advances to the next matching subspace. It fills addr with the
	// labels of the non-filtered mapped dimensions and returns the subspace
	// index. It returns false, leaving addr untouched, when exhausted.
	Next(addr []label.Label) (uint32, bool)
}

// MemoryUsage reports the bytes held by a value.
type MemoryUsage struct {
	Allocated uint64
	Used      uint64
}

// Add returns the sum of two usages.
func (m MemoryUsage) Add(o MemoryUsage) MemoryUsage {
	return MemoryUsage{Allocated: m.Allocated + o.Allocated, Used: m.Used + o.Used}
}

// AllMappedDims returns [0, 1, ..., n-1], the view dimensions for a point lookup.
func AllMappedDims(n int) []int {
	dims := make([]int, n)
	for i := range dims {
		dims[i] = i
	}
	return dims
}

// CheckViewDims panics if dims is not a strictly increasing subset of
// [0, numMapped).
func CheckViewDims(dims []int, numMapped int) {
	prev := -1
	for _, d := range dims {
		if d <= prev || d >= numMapped {
			panic(fmt.Sprintf("value: bad view dimensions %v for %d mapped dimensions", dims, numMapped))
		}
		prev = d
	}
}

// Subspace returns the cells of subspace idx.
func Subspace[T cell.Cell](v Value, idx uint32) []T {
	size := v.Type().DenseSubspaceSize()
	cells := cell.Typed[T](v.Cells())
	off := int(idx) * size
	return cells[off : off+size : off+size]
}
