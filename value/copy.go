package value

import (
	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/label"
)

// Copy rebuilds v with the builders of f, preserving type, addresses and cells.
// It is the standard way to move a value between representations.
func Copy(v Value, f BuilderFactory) Value {
	switch v.Type().CellType() {
	case cell.Double:
		return copyValue[float64](v, f)
	case cell.Float:
		return copyValue[float32](v, f)
	case cell.BFloat16:
		return copyValue[cell.BF16](v, f)
	default:
		return copyValue[cell.I8](v, f)
	}
}

func copyValue[T cell.Cell](v Value, f BuilderFactory) Value {
	t := v.Type()
	numMapped := t.NumMappedDimensions()
	size := t.DenseSubspaceSize()
	b := CreateBuilder[T](f, t, numMapped, size, v.Index().Size())

	cells := cell.Typed[T](v.Cells())
	addr := make([]label.Label, numMapped)
	view := v.Index().CreateView(nil)
	view.Lookup(nil)
	for {
		idx, ok := view.Next(addr)
		if !ok {
			break
		}
		off := int(idx) * size
		copy(b.AddSubspace(addr), cells[off:off+size])
	}
	return b.Build()
}
