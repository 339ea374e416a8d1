package streamed

import (
	"fmt"
	"slices"

	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/label"
	"github.com/hupe1980/tensorcore/value"
)

// Builder appends subspaces to flat cell and label arrays.
type Builder[T cell.Cell] struct {
	typ          value.Type
	numMapped    int
	subspaceSize int
	numSubspaces int
	cells        []T
	labels       []label.Label
}

var _ value.Builder[float64] = (*Builder[float64])(nil)

// NewBuilder returns a builder for t. expectedSubspaces is a capacity hint.
func NewBuilder[T cell.Cell](t value.Type, numMapped, subspaceSize, expectedSubspaces int) *Builder[T] {
	if t.CellType() != cell.TypeOf[T]() {
		panic(fmt.Sprintf("streamed: type %s does not hold %s cells", t, cell.TypeOf[T]()))
	}
	return &Builder[T]{
		typ:          t,
		numMapped:    numMapped,
		subspaceSize: subspaceSize,
		cells:        make([]T, 0, expectedSubspaces*subspaceSize),
		labels:       make([]label.Label, 0, expectedSubspaces*numMapped),
	}
}

// CellType implements value.BuilderBase.
func (b *Builder[T]) CellType() cell.Type { return cell.TypeOf[T]() }

// AddSubspace implements value.Builder. Addresses are not deduplicated.
func (b *Builder[T]) AddSubspace(addr []label.Label) []T {
	if len(addr) != b.numMapped {
		panic(fmt.Sprintf("streamed: address needs %d labels, got %d", b.numMapped, len(addr)))
	}
	b.labels = append(b.labels, addr...)
	b.numSubspaces++
	old := len(b.cells)
	b.cells = slices.Grow(b.cells, b.subspaceSize)[:old+b.subspaceSize]
	return b.cells[old : old+b.subspaceSize : old+b.subspaceSize]
}

// Build implements value.Builder.
func (b *Builder[T]) Build() value.Value {
	if b.numMapped == 0 && b.numSubspaces == 0 {
		// A tensor without mapped dimensions always has its one subspace.
		b.AddSubspace(nil)
	}
	v := NewValue(b.typ, b.numMapped, b.cells, b.numSubspaces, b.labels)
	b.cells, b.labels = nil, nil
	return v
}

// BuilderFactory creates streamed builders.
type BuilderFactory struct{}

// Factory returns the streamed builder factory.
func Factory() BuilderFactory { return BuilderFactory{} }

// CreateBuilderBase implements value.BuilderFactory.
func (BuilderFactory) CreateBuilderBase(t value.Type, numMapped, subspaceSize, expectedSubspaces int) value.BuilderBase {
	switch t.CellType() {
	case cell.Double:
		return NewBuilder[float64](t, numMapped, subspaceSize, expectedSubspaces)
	case cell.Float:
		return NewBuilder[float32](t, numMapped, subspaceSize, expectedSubspaces)
	case cell.BFloat16:
		return NewBuilder[cell.BF16](t, numMapped, subspaceSize, expectedSubspaces)
	case cell.Int8:
		return NewBuilder[cell.I8](t, numMapped, subspaceSize, expectedSubspaces)
	default:
		panic(fmt.Sprintf("streamed: unknown cell type %s", t.CellType()))
	}
}
