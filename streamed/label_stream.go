package streamed

import "github.com/hupe1980/tensorcore/label"

// LabelBlock is the address of one subspace.
type LabelBlock struct {
	SubspaceIndex uint32
	Address       []label.Label
}

// LabelBlockStream decodes a flat label array into consecutive fixed-width
// address blocks. It is a forward-only cursor.
type LabelBlockStream struct {
	labels       []label.Label
	numMapped    int
	numSubspaces uint32
	next         uint32
}

// NewLabelBlockStream returns a stream over numSubspaces blocks of numMapped
// labels each.
func NewLabelBlockStream(numSubspaces uint32, labels []label.Label, numMapped int) *LabelBlockStream {
	return &LabelBlockStream{
		labels:       labels,
		numMapped:    numMapped,
		numSubspaces: numSubspaces,
	}
}

// Reset rewinds the stream to the first block.
func (s *LabelBlockStream) Reset() { s.next = 0 }

// Next returns the next block. The block's Address aliases the stream's
// label storage and must not be modified.
func (s *LabelBlockStream) Next() (LabelBlock, bool) {
	if s.next >= s.numSubspaces {
		return LabelBlock{}, false
	}
	idx := s.next
	s.next++
	off := int(idx) * s.numMapped
	return LabelBlock{
		SubspaceIndex: idx,
		Address:       s.labels[off : off+s.numMapped : off+s.numMapped],
	}, true
}
