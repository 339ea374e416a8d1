package streamed

import (
	"fmt"

	"github.com/hupe1980/tensorcore/label"
)

// iterationView enumerates every subspace in insertion order.
type iterationView struct {
	stream *LabelBlockStream
}

func (v *iterationView) Lookup(addr []label.Label) {
	if len(addr) != 0 {
		panic(fmt.Sprintf("streamed: iteration view takes no lookup labels, got %d", len(addr)))
	}
	v.stream.Reset()
}

func (v *iterationView) Next(addr []label.Label) (uint32, bool) {
	if len(addr) != v.stream.numMapped {
		panic(fmt.Sprintf("streamed: result address needs %d labels, got %d", v.stream.numMapped, len(addr)))
	}
	block, ok := v.stream.Next()
	if !ok {
		return 0, false
	}
	copy(addr, block.Address)
	return block.SubspaceIndex, true
}

// filterView scans every subspace and yields those whose labels in the
// filtered dimensions match the lookup target.
type filterView struct {
	stream   *LabelBlockStream
	isFilter []bool
	target   []label.Label
	numOut   int
}

func newFilterView(stream *LabelBlockStream, numMapped int, dims []int) *filterView {
	isFilter := make([]bool, numMapped)
	for _, d := range dims {
		isFilter[d] = true
	}
	return &filterView{
		stream:   stream,
		isFilter: isFilter,
		target:   make([]label.Label, len(dims)),
		numOut:   numMapped - len(dims),
	}
}

func (v *filterView) Lookup(addr []label.Label) {
	if len(addr) != len(v.target) {
		panic(fmt.Sprintf("streamed: lookup needs %d labels, got %d", len(v.target), len(addr)))
	}
	copy(v.target, addr)
	v.stream.Reset()
}

func (v *filterView) Next(addr []label.Label) (uint32, bool) {
	if len(addr) != v.numOut {
		panic(fmt.Sprintf("streamed: result address needs %d labels, got %d", v.numOut, len(addr)))
	}
	for {
		block, ok := v.stream.Next()
		if !ok {
			return 0, false
		}
		if v.matches(block.Address) {
			out := 0
			for i, l := range block.Address {
				if !v.isFilter[i] {
					addr[out] = l
					out++
				}
			}
			return block.SubspaceIndex, true
		}
	}
}

func (v *filterView) matches(address []label.Label) bool {
	t := 0
	for i, l := range address {
		if v.isFilter[i] {
			if l != v.target[t] {
				return false
			}
			t++
		}
	}
	return true
}
