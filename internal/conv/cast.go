package conv

import (
	"fmt"
	"math"
)

// IntToUint32 converts a non-negative int that fits in 32 bits.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("conv: %d is negative", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("conv: %d does not fit in uint32", v)
	}
	return uint32(v), nil
}

// MustUint32 is like IntToUint32 but panics, naming what overflowed.
// Tensors with more than 2^32 subspaces or cells are not representable.
func MustUint32(v int, what string) uint32 {
	u, err := IntToUint32(v)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", what, err))
	}
	return u
}
