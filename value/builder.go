package value

import (
	"fmt"

	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/label"
)

// Builder incrementally constructs a Value with cells of type T.
// A Builder is owned by one goroutine until Build consumes it.
type Builder[T cell.Cell] interface {
	// AddSubspace registers addr (one label per mapped dimension) and returns
	// its writable cells. The slice is only valid until the next call.
	AddSubspace(addr []label.Label) []T
	// Build returns the finished Value. The builder must not be used afterwards.
	Build() Value
}

// BuilderBase is a Builder whose cell type is only known at runtime.
// Convert it with CreateBuilder or AsBuilder.
type BuilderBase interface {
	CellType() cell.Type
}

// BuilderFactory creates builders for one representation.
type BuilderFactory interface {
	// CreateBuilderBase returns a Builder[T] for t.CellType() as a BuilderBase.
	CreateBuilderBase(t Type, numMapped, subspaceSize, expectedSubspaces int) BuilderBase
}

// AsBuilder converts a BuilderBase to its typed Builder. It panics if T does
// not match the builder's cell type.
func AsBuilder[T cell.Cell](b BuilderBase) Builder[T] {
	typed, ok := b.(Builder[T])
	if !ok {
		panic(fmt.Sprintf("value: builder has %s cells, requested %s", b.CellType(), cell.TypeOf[T]()))
	}
	return typed
}

// CreateBuilder asks f for a builder of t whose cell type must be T.
func CreateBuilder[T cell.Cell](f BuilderFactory, t Type, numMapped, subspaceSize, expectedSubspaces int) Builder[T] {
	if t.CellType() != cell.TypeOf[T]() {
		panic(fmt.Sprintf("value: type %s does not hold %s cells", t, cell.TypeOf[T]()))
	}
	return AsBuilder[T](f.CreateBuilderBase(t, numMapped, subspaceSize, expectedSubspaces))
}

// NewBuilder asks f for a builder of t, deriving sizes from the type.
func NewBuilder[T cell.Cell](f BuilderFactory, t Type, expectedSubspaces int) Builder[T] {
	return CreateBuilder[T](f, t, t.NumMappedDimensions(), t.DenseSubspaceSize(), expectedSubspaces)
}
