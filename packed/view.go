package packed

import (
	"fmt"

	"github.com/hupe1980/tensorcore/internal/mappings"
	"github.com/hupe1980/tensorcore/label"
)

// allMappingsView enumerates every address in sort order.
type allMappingsView struct {
	mappings *mappings.PackedMappings
	next     int
}

func (v *allMappingsView) Lookup(addr []label.Label) {
	if len(addr) != 0 {
		panic(fmt.Sprintf("packed: enumeration view takes no lookup labels, got %d", len(addr)))
	}
	v.next = 0
}

func (v *allMappingsView) Next(addr []label.Label) (uint32, bool) {
	if len(addr) != v.mappings.NumMappedDims() {
		panic(fmt.Sprintf("packed: result address needs %d labels, got %d", v.mappings.NumMappedDims(), len(addr)))
	}
	if v.next >= v.mappings.Size() {
		return 0, false
	}
	idx := v.mappings.FillAddressBySortID(v.next, addr)
	v.next++
	return idx, true
}

// lookupView resolves one complete address.
type lookupView struct {
	mappings  *mappings.PackedMappings
	enums     []uint32
	result    uint32
	firstTime bool
}

func newLookupView(m *mappings.PackedMappings) *lookupView {
	return &lookupView{mappings: m, enums: make([]uint32, m.NumMappedDims())}
}

func (v *lookupView) Lookup(addr []label.Label) {
	if len(addr) != len(v.enums) {
		panic(fmt.Sprintf("packed: lookup needs %d labels, got %d", len(v.enums), len(addr)))
	}
	v.result, v.firstTime = v.mappings.SubspaceOfAddress(addr, v.enums)
}

func (v *lookupView) Next(addr []label.Label) (uint32, bool) {
	if len(addr) != 0 {
		panic(fmt.Sprintf("packed: point lookup yields no labels, got buffer of %d", len(addr)))
	}
	if !v.firstTime {
		return 0, false
	}
	v.firstTime = false
	return v.result, true
}

// indexView scans the table for addresses matching a subset of dimensions.
type indexView struct {
	mappings    *mappings.PackedMappings
	dims        []int
	lookupEnums []uint32
	fullEnums   []uint32
	next        int
	valid       bool
}

func newIndexView(m *mappings.PackedMappings, dims []int) *indexView {
	return &indexView{
		mappings:    m,
		dims:        dims,
		lookupEnums: make([]uint32, len(dims)),
		fullEnums:   make([]uint32, m.NumMappedDims()),
	}
}

func (v *indexView) Lookup(addr []label.Label) {
	if len(addr) != len(v.dims) {
		panic(fmt.Sprintf("packed: lookup needs %d labels, got %d", len(v.dims), len(addr)))
	}
	v.next = 0
	v.valid = false
	store := v.mappings.LabelStore()
	for i, l := range addr {
		enum, ok := store.FindLabel(l)
		if !ok {
			return
		}
		v.lookupEnums[i] = enum
	}
	v.valid = true
}

func (v *indexView) Next(addr []label.Label) (uint32, bool) {
	numOut := len(v.fullEnums) - len(v.dims)
	if len(addr) != numOut {
		panic(fmt.Sprintf("packed: result address needs %d labels, got %d", numOut, len(addr)))
	}
	if !v.valid {
		return 0, false
	}
	for v.next < v.mappings.Size() {
		subspace := v.mappings.FillEnumsBySortID(v.next, v.fullEnums)
		v.next++
		if v.matches() {
			v.fill(addr)
			return subspace, true
		}
	}
	v.valid = false
	return 0, false
}

// matches walks the filter dimensions and the full address in lockstep.
func (v *indexView) matches() bool {
	for i, d := range v.dims {
		if v.fullEnums[d] != v.lookupEnums[i] {
			return false
		}
	}
	return true
}

func (v *indexView) fill(addr []label.Label) {
	store := v.mappings.LabelStore()
	filter, out := 0, 0
	for d, enum := range v.fullEnums {
		if filter < len(v.dims) && v.dims[filter] == d {
			filter++
			continue
		}
		addr[out] = store.Label(enum)
		out++
	}
}
