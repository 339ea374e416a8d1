// Package tensorcore is the tensor value layer of a ranking engine: how
// tensors are stored, built, addressed and structurally updated.
//
// # Packages
//
//   - value:      the representation-independent Value / Index / View contract
//   - streamed:   flat, unindexed layout for single-pass consumption
//   - packed:     single-allocation, sorted layout for repeated lookups
//   - update:     partial updates (modify, add, remove) over any layout
//   - tensorspec: address -> cell description with JSON encoding
//
// # Quick Start
//
//	t := value.MustParseType("tensor(x{},y{})")
//	b := value.NewBuilder[float64](packed.Factory(), t, 2)
//	copy(b.AddSubspace(label.MakeAll("1", "1")), []float64{1})
//	copy(b.AddSubspace(label.MakeAll("2", "1")), []float64{3})
//	v := b.Build()
//
//	mod := tensorspec.New("tensor(x{},y{})").
//	    Add(tensorspec.Address{"x": "1", "y": "1"}, 10).
//	    MustValue(streamed.Factory())
//	out, err := update.Modify(v, update.OpAdd, mod, packed.Factory())
//
// # Concurrency
//
// Built values are immutable and may be shared by any number of goroutines.
// Builders and views are single-owner. Partial updates are pure functions.
package tensorcore
