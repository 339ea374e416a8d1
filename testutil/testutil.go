package testutil

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/hupe1980/tensorcore/tensorspec"
	"github.com/hupe1980/tensorcore/value"
)

// RNG wraps a seeded random source. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Cell returns a small integer-valued cell that every cell type holds
// exactly.
func (r *RNG) Cell() float64 {
	return float64(r.Intn(201) - 100)
}

// Spec returns a spec of the given type with up to numSubspaces distinct
// mapped addresses. Mapped labels are drawn from a pool of labelPool
// decimal strings, so distinct specs overlap.
func (r *RNG) Spec(typ string, numSubspaces, labelPool int) *tensorspec.Spec {
	t := value.MustParseType(typ)
	spec := tensorspec.New(typ)
	mapped := t.MappedDimensions()
	indexed := t.IndexedDimensions()
	if len(mapped) == 0 {
		numSubspaces = 1
	}

	for s := 0; s < numSubspaces; s++ {
		base := make(tensorspec.Address, len(mapped)+len(indexed))
		for _, d := range mapped {
			base[d.Name] = strconv.Itoa(r.Intn(labelPool))
		}
		r.fillDense(spec, base, indexed, 0)
	}
	return spec
}

func (r *RNG) fillDense(spec *tensorspec.Spec, addr tensorspec.Address, dims []value.Dimension, d int) {
	if d == len(dims) {
		a := make(tensorspec.Address, len(addr))
		for k, v := range addr {
			a[k] = v
		}
		spec.Add(a, r.Cell())
		return
	}
	for i := uint32(0); i < dims[d].Size; i++ {
		addr[dims[d].Name] = strconv.FormatUint(uint64(i), 10)
		r.fillDense(spec, addr, dims, d+1)
	}
}
