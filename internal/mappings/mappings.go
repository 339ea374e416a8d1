package mappings

import (
	"fmt"
	"slices"

	"github.com/hupe1980/tensorcore/label"
)

// PackedMappings is an immutable, address-sorted table mapping label tuples
// to subspace indexes.
type PackedMappings struct {
	numDims   int
	store     LabelStore
	enums     []uint32
	subspaces []uint32
}

// Size returns the number of addresses.
func (m *PackedMappings) Size() int { return len(m.subspaces) }

// NumMappedDims returns the address width.
func (m *PackedMappings) NumMappedDims() int { return m.numDims }

// LabelStore returns the label <-> enum translation table.
func (m *PackedMappings) LabelStore() LabelStore { return m.store }

// SubspaceOfEnums returns the subspace index of the given enum tuple.
func (m *PackedMappings) SubspaceOfEnums(enums []uint32) (uint32, bool) {
	sortID, ok := m.SortIDOfEnums(enums)
	if !ok {
		return 0, false
	}
	return m.subspaces[sortID], true
}

// SubspaceOfAddress returns the subspace index of addr. enums is scratch
// space of NumMappedDims() slots. A label missing from the store fails
// without searching the table.
func (m *PackedMappings) SubspaceOfAddress(addr []label.Label, enums []uint32) (uint32, bool) {
	for i, l := range addr {
		e, ok := m.store.FindLabel(l)
		if !ok {
			return 0, false
		}
		enums[i] = e
	}
	return m.SubspaceOfEnums(enums)
}

// FillEnumsBySortID copies the enums of entry sortID into enums and returns
// its subspace index.
func (m *PackedMappings) FillEnumsBySortID(sortID int, enums []uint32) uint32 {
	copy(enums, m.entry(sortID))
	return m.subspaces[sortID]
}

// FillAddressBySortID writes the labels of entry sortID into addr and
// returns its subspace index.
func (m *PackedMappings) FillAddressBySortID(sortID int, addr []label.Label) uint32 {
	for d, e := range m.entry(sortID) {
		addr[d] = m.store.Label(e)
	}
	return m.subspaces[sortID]
}

func (m *PackedMappings) entry(sortID int) []uint32 {
	off := sortID * m.numDims
	return m.enums[off : off+m.numDims : off+m.numDims]
}

// SortIDOfEnums returns the sort position of the given enum tuple.
func (m *PackedMappings) SortIDOfEnums(enums []uint32) (int, bool) {
	if len(enums) != m.numDims {
		panic(fmt.Sprintf("mappings: need %d enums, got %d", m.numDims, len(enums)))
	}
	lo, hi := 0, m.Size()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch c := slices.Compare(m.entry(mid), enums); {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}
