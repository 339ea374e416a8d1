package mappings

import (
	"fmt"
	"slices"

	"github.com/google/btree"

	"github.com/hupe1980/tensorcore/internal/conv"
	"github.com/hupe1980/tensorcore/label"
)

const btreeDegree = 32

type entry struct {
	addr     []label.Label
	subspace uint32
}

// Builder collects distinct addresses in an ordered tree.
type Builder struct {
	numDims int
	tree    *btree.BTreeG[entry]
}

// NewBuilder returns a builder for addresses of numDims labels.
func NewBuilder(numDims int) *Builder {
	return &Builder{
		numDims: numDims,
		tree: btree.NewG(btreeDegree, func(a, b entry) bool {
			return label.CompareAddress(a.addr, b.addr) < 0
		}),
	}
}

// NumMappedDims returns the address width.
func (b *Builder) NumMappedDims() int { return b.numDims }

// AddMappingFor returns the subspace index of addr, assigning the next free
// index if addr has not been seen before. addr is copied.
func (b *Builder) AddMappingFor(addr []label.Label) uint32 {
	if len(addr) != b.numDims {
		panic(fmt.Sprintf("mappings: address needs %d labels, got %d", b.numDims, len(addr)))
	}
	if e, ok := b.tree.Get(entry{addr: addr}); ok {
		return e.subspace
	}
	idx := conv.MustUint32(b.tree.Len(), "mappings: subspace index")
	b.tree.ReplaceOrInsert(entry{addr: slices.Clone(addr), subspace: idx})
	return idx
}

// Size returns the number of distinct addresses.
func (b *Builder) Size() int { return b.tree.Len() }

// EnumsLen returns the number of uint32 slots TargetMemory needs for enums.
func (b *Builder) EnumsLen() int { return b.Size() * b.numDims }

// TargetMemory writes the sorted table into enums (EnumsLen() slots) and
// subspaces (Size() slots) and returns a table referencing them.
func (b *Builder) TargetMemory(enums, subspaces []uint32) *PackedMappings {
	if len(enums) != b.EnumsLen() || len(subspaces) != b.Size() {
		panic(fmt.Sprintf("mappings: target needs %d enum and %d subspace slots, got %d and %d",
			b.EnumsLen(), b.Size(), len(enums), len(subspaces)))
	}
	store := NewLabelStore(b.sortedLabels())
	sortID := 0
	b.tree.Ascend(func(e entry) bool {
		row := enums[sortID*b.numDims : (sortID+1)*b.numDims]
		for d, l := range e.addr {
			enum, ok := store.FindLabel(l)
			if !ok {
				panic("mappings: label missing from store")
			}
			row[d] = enum
		}
		subspaces[sortID] = e.subspace
		sortID++
		return true
	})
	return &PackedMappings{
		numDims:   b.numDims,
		store:     store,
		enums:     enums,
		subspaces: subspaces,
	}
}

// Build writes the table into freshly allocated memory.
func (b *Builder) Build() *PackedMappings {
	return b.TargetMemory(make([]uint32, b.EnumsLen()), make([]uint32, b.Size()))
}

func (b *Builder) sortedLabels() []label.Label {
	seen := make(map[label.Label]struct{})
	var labels []label.Label
	b.tree.Ascend(func(e entry) bool {
		for _, l := range e.addr {
			if _, ok := seen[l]; !ok {
				seen[l] = struct{}{}
				labels = append(labels, l)
			}
		}
		return true
	})
	slices.SortFunc(labels, label.Compare)
	return labels
}
