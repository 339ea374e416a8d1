package tensorspec

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/internal/mappings"
	"github.com/hupe1980/tensorcore/label"
	"github.com/hupe1980/tensorcore/value"
)

// FromValue describes every cell of v, including zero cells of dense
// subspaces.
func FromValue(v value.Value) *Spec {
	t := v.Type()
	s := New(t.String())
	mapped := t.MappedDimensions()
	indexed := t.IndexedDimensions()
	size := t.DenseSubspaceSize()
	cells := v.Cells()

	addr := make([]label.Label, len(mapped))
	coords := make([]uint32, len(indexed))
	view := v.Index().CreateView(nil)
	view.Lookup(nil)
	for {
		subspace, ok := view.Next(addr)
		if !ok {
			break
		}
		clear(coords)
		for i := 0; i < size; i++ {
			a := make(Address, len(mapped)+len(indexed))
			for d, dim := range mapped {
				a[dim.Name] = addr[d].String()
			}
			for d, dim := range indexed {
				a[dim.Name] = strconv.FormatUint(uint64(coords[d]), 10)
			}
			s.Add(a, cells.Float64(int(subspace)*size+i))
			nextCoords(coords, indexed)
		}
	}
	return s
}

// nextCoords increments a row-major coordinate vector.
func nextCoords(coords []uint32, dims []value.Dimension) {
	for d := len(coords) - 1; d >= 0; d-- {
		coords[d]++
		if coords[d] < dims[d].Size {
			return
		}
		coords[d] = 0
	}
}

type subspace struct {
	addr  []label.Label
	cells []float64
}

// ToValue builds s with the builders of f. Dense cells missing from s are
// zero.
func (s *Spec) ToValue(f value.BuilderFactory) (value.Value, error) {
	t, err := value.ParseType(s.typ)
	if err != nil {
		return nil, err
	}
	mapped := t.MappedDimensions()
	indexed := t.IndexedDimensions()
	size := t.DenseSubspaceSize()

	index := mappings.NewBuilder(len(mapped))
	var groups []*subspace
	for _, c := range s.cells {
		if len(c.Address) != len(t.Dimensions()) {
			return nil, fmt.Errorf("tensorspec: address %s does not match type %s", c.Address.Key(), t)
		}
		addr := make([]label.Label, len(mapped))
		for d, dim := range mapped {
			l, ok := c.Address[dim.Name]
			if !ok {
				return nil, fmt.Errorf("tensorspec: address %s lacks dimension %q", c.Address.Key(), dim.Name)
			}
			addr[d] = label.Make(l)
		}
		offset := 0
		for _, dim := range indexed {
			raw, ok := c.Address[dim.Name]
			if !ok {
				return nil, fmt.Errorf("tensorspec: address %s lacks dimension %q", c.Address.Key(), dim.Name)
			}
			coord, ok := label.Make(raw).AsIndex()
			if !ok || coord >= uint64(dim.Size) {
				return nil, fmt.Errorf("tensorspec: bad coordinate %q for dimension %s", raw, dim)
			}
			offset = offset*int(dim.Size) + int(coord)
		}
		idx := int(index.AddMappingFor(addr))
		if idx == len(groups) {
			groups = append(groups, &subspace{addr: addr, cells: make([]float64, size)})
		}
		groups[idx].cells[offset] = c.Value
	}

	slices.SortFunc(groups, func(a, b *subspace) int { return label.CompareAddress(a.addr, b.addr) })

	switch t.CellType() {
	case cell.Double:
		return build[float64](f, t, groups), nil
	case cell.Float:
		return build[float32](f, t, groups), nil
	case cell.BFloat16:
		return build[cell.BF16](f, t, groups), nil
	default:
		return build[cell.I8](f, t, groups), nil
	}
}

func build[T cell.Cell](f value.BuilderFactory, t value.Type, subspaces []*subspace) value.Value {
	b := value.NewBuilder[T](f, t, len(subspaces))
	for _, g := range subspaces {
		dst := b.AddSubspace(g.addr)
		for i, v := range g.cells {
			dst[i] = cell.FromFloat64[T](v)
		}
	}
	return b.Build()
}

// MustValue is like ToValue but panics on error.
func (s *Spec) MustValue(f value.BuilderFactory) value.Value {
	v, err := s.ToValue(f)
	if err != nil {
		panic(err)
	}
	return v
}
