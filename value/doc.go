// Package value defines the representation-independent tensor contract.
//
// A Value is an immutable tensor: a Type, a flat cell buffer and an Index
// mapping sparse addresses to dense subspaces. Every representation
// (streamed, packed) implements this contract, and all tensor algebra is
// written against it.
//
// # Views
//
// Index.CreateView selects the lookup shape from the filtered dimensions:
//
//   - no dimensions:          full enumeration, every subspace with its full address
//   - all mapped dimensions:  point lookup, at most one result
//   - a strict subset:        filtered scan, results carry the remaining labels
//
// A View is stateful and single-owner. Call Lookup before Next; Lookup may be
// called again at any time to restart the view with a new target.
//
// # Builders
//
// Values are created through a BuilderFactory. The caller adds one subspace
// per sparse address, fills the returned cell slice, and calls Build.
package value
