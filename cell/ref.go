package cell

import "fmt"

// Ref is a type-erased, read-mostly reference to a slice of cells.
//
// The zero Ref is an empty Double slice.
type Ref struct {
	typ  Type
	data any
}

// RefOf wraps a typed cell slice.
func RefOf[T Cell](cells []T) Ref {
	return Ref{typ: TypeOf[T](), data: cells}
}

// Type returns the cell type of the referenced slice.
func (r Ref) Type() Type { return r.typ }

// Len returns the number of cells.
func (r Ref) Len() int {
	switch s := r.data.(type) {
	case []float64:
		return len(s)
	case []float32:
		return len(s)
	case []BF16:
		return len(s)
	case []I8:
		return len(s)
	default:
		return 0
	}
}

// Float64 returns cell i widened to float64.
func (r Ref) Float64(i int) float64 {
	switch s := r.data.(type) {
	case []float64:
		return s[i]
	case []float32:
		return float64(s[i])
	case []BF16:
		return float64(s[i].Float32())
	case []I8:
		return float64(s[i])
	default:
		panic(fmt.Sprintf("cell: index %d out of range for empty ref", i))
	}
}

// Typed returns the underlying slice. It panics if T does not match the
// referenced cell type.
func Typed[T Cell](r Ref) []T {
	if r.data == nil {
		return nil
	}
	s, ok := r.data.([]T)
	if !ok {
		panic(fmt.Sprintf("cell: ref holds %s cells, requested %s", r.typ, TypeOf[T]()))
	}
	return s
}
