package mappings

import (
	"slices"
	"unsafe"

	"github.com/hupe1980/tensorcore/label"
)

// LabelStore is a sorted set of distinct labels. A label's enum is its
// position in the set.
type LabelStore struct {
	labels []label.Label
}

// NewLabelStore returns a store for labels, which must be sorted and unique.
func NewLabelStore(labels []label.Label) LabelStore {
	return LabelStore{labels: labels}
}

// FindLabel returns the enum of l.
func (s LabelStore) FindLabel(l label.Label) (uint32, bool) {
	i, ok := slices.BinarySearchFunc(s.labels, l, label.Compare)
	return uint32(i), ok
}

// Label returns the label with the given enum.
func (s LabelStore) Label(enum uint32) label.Label {
	return s.labels[enum]
}

// Size returns the number of distinct labels.
func (s LabelStore) Size() int { return len(s.labels) }

// MemoryUsage returns the bytes held by the store.
func (s LabelStore) MemoryUsage() uint64 {
	return uint64(cap(s.labels)) * uint64(unsafe.Sizeof(label.Label{}))
}
