package packed

import (
	"fmt"
	"slices"

	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/internal/arena"
	"github.com/hupe1980/tensorcore/internal/conv"
	"github.com/hupe1980/tensorcore/internal/mappings"
	"github.com/hupe1980/tensorcore/label"
	"github.com/hupe1980/tensorcore/value"
)

// Builder collects subspaces and packs them into one block on Build.
// Adding an address twice returns the same cells.
type Builder[T cell.Cell] struct {
	typ          value.Type
	subspaceSize int
	mappings     *mappings.Builder
	cells        []T
}

var _ value.Builder[float64] = (*Builder[float64])(nil)

// NewBuilder returns a builder for t. expectedSubspaces is a capacity hint.
func NewBuilder[T cell.Cell](t value.Type, numMapped, subspaceSize, expectedSubspaces int) *Builder[T] {
	if t.CellType() != cell.TypeOf[T]() {
		panic(fmt.Sprintf("packed: type %s does not hold %s cells", t, cell.TypeOf[T]()))
	}
	return &Builder[T]{
		typ:          t,
		subspaceSize: subspaceSize,
		mappings:     mappings.NewBuilder(numMapped),
		cells:        make([]T, 0, expectedSubspaces*subspaceSize),
	}
}

// CellType implements value.BuilderBase.
func (b *Builder[T]) CellType() cell.Type { return cell.TypeOf[T]() }

// AddSubspace implements value.Builder.
func (b *Builder[T]) AddSubspace(addr []label.Label) []T {
	idx := int(b.mappings.AddMappingFor(addr))
	start := idx * b.subspaceSize
	end := start + b.subspaceSize
	if len(b.cells) < end {
		// Subspace indexes are dense, so growth is at most one subspace.
		b.cells = slices.Grow(b.cells, end-len(b.cells))[:end]
	}
	return b.cells[start:end:end]
}

// Build implements value.Builder. It performs a single allocation holding
// the header, the sorted address table and the cells.
func (b *Builder[T]) Build() value.Value {
	if b.mappings.NumMappedDims() == 0 && b.mappings.Size() == 0 {
		b.AddSubspace(nil)
	}
	numMappings := b.mappings.Size()

	var layout arena.Layout
	headerRegion := arena.ReserveSlice[uint32](&layout, headerWords)
	enumsRegion := layout.Reserve(b.mappings.EnumsLen()*4, arena.DefaultAlignment)
	subspacesRegion := arena.ReserveSlice[uint32](&layout, numMappings)
	cellsRegion := layout.Reserve(len(b.cells)*b.typ.CellType().Size(), arena.DefaultAlignment)

	block := arena.New(&layout)
	header := arena.Slice[uint32](block, headerRegion)
	header[hdrMagic] = headerMagic
	header[hdrNumMappings] = conv.MustUint32(numMappings, "packed: mappings")
	header[hdrNumDims] = uint32(b.mappings.NumMappedDims())
	header[hdrSubspaceSize] = conv.MustUint32(b.subspaceSize, "packed: subspace size")
	header[hdrCellType] = uint32(b.typ.CellType())

	m := b.mappings.TargetMemory(
		arena.Slice[uint32](block, enumsRegion),
		arena.Slice[uint32](block, subspacesRegion),
	)
	cells := arena.Slice[T](block, cellsRegion)
	copy(cells, b.cells)

	b.cells, b.mappings = nil, nil
	return newTensor(b.typ, block, header, m, cells)
}

// BuilderFactory creates packed builders.
type BuilderFactory struct{}

// Factory returns the packed builder factory.
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
		panic(fmt.Sprintf("packed: unknown cell type %s", t.CellType()))
	}
}
