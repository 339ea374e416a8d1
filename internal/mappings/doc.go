// Package mappings implements the sorted address table behind the packed
// tensor representation.
//
// A Builder interns addresses (label tuples) and assigns each distinct
// address a dense subspace index in insertion order. TargetMemory then
// writes the table into caller-provided memory, sorted by address:
//
//	enums:     [sortID*numDims + d] -> label enum of dimension d
//	subspaces: [sortID]             -> subspace index
//
// Labels are translated to enums through a LabelStore holding every distinct
// label in sorted order, so comparing enum tuples orders addresses exactly
// like comparing label strings.
package mappings
