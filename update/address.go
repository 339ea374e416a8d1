package update

import (
	"github.com/hupe1980/tensorcore"
	"github.com/hupe1980/tensorcore/label"
	"github.com/hupe1980/tensorcore/value"
)

type dimTarget struct {
	mapped bool
	pos    int    // slot in the lookup address (mapped)
	size   uint64 // coordinate bound (indexed)
}

// addressHandler translates a full sparse modifier address into a lookup
// address over the input's mapped dimensions plus a dense cell offset.
type addressHandler struct {
	targets []dimTarget
	lookup  []label.Label
}

func newAddressHandler(input, modifier value.Type) (*addressHandler, error) {
	if !modifier.IsSparse() {
		return nil, tensorcore.ErrNonSparseModifier
	}
	inDims := input.Dimensions()
	modDims := modifier.Dimensions()
	if len(inDims) != len(modDims) {
		return nil, &tensorcore.TypeMismatchError{Op: "modify", Input: input.String(), Other: modifier.String()}
	}
	h := &addressHandler{
		targets: make([]dimTarget, len(inDims)),
		lookup:  make([]label.Label, input.NumMappedDimensions()),
	}
	pos := 0
	for i, d := range inDims {
		if d.Name != modDims[i].Name {
			return nil, &tensorcore.TypeMismatchError{Op: "modify", Input: input.String(), Other: modifier.String()}
		}
		if d.IsMapped() {
			h.targets[i] = dimTarget{mapped: true, pos: pos}
			pos++
		} else {
			h.targets[i] = dimTarget{size: uint64(d.Size)}
		}
	}
	return h, nil
}

// handle fills h.lookup from addr and returns the dense offset. It returns
// false when an indexed coordinate is not a valid decimal below its size.
func (h *addressHandler) handle(addr []label.Label) (int, bool) {
	offset := 0
	for i, t := range h.targets {
		if t.mapped {
			h.lookup[t.pos] = addr[i]
			continue
		}
		coord, ok := addr[i].AsIndex()
		if !ok || coord >= t.size {
			return 0, false
		}
		offset = offset*int(t.size) + int(coord)
	}
	return offset, true
}
