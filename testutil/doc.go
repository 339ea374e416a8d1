// Package testutil provides seeded random tensors for tests and
// benchmarks.
//
//	rng := testutil.NewRNG(seed)
//	spec := rng.Spec("tensor<float>(x{},y[4])", 100, 10)
//	v := spec.MustValue(packed.Factory())
package testutil
