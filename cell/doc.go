// Package cell defines the closed set of numeric cell types a tensor can hold.
//
// # Cell Types
//
//   - Double:   float64
//   - Float:    float32
//   - BFloat16: 16-bit brain float, converted through float32
//   - Int8:     one-byte float holding a small integer value
//
// Representations are generic over the Cell constraint. Code that must work
// with a value whose cell type is only known at runtime goes through Ref, a
// type-erased view of a cell slice, and dispatches on Type.
package cell
