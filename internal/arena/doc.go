// Package arena provides single-allocation memory blocks partitioned into
// typed regions.
//
// A Layout is planned first: each Reserve call appends an aligned region
// and returns its byte range. New then performs exactly one allocation for
// the whole layout. Typed accessors (Slice) reinterpret a region as a slice
// of a pointer-free element type.
//
// # Features
//
//   - One allocation per block, base aligned to DefaultAlignment
//   - Regions are plain offsets, so a block can be inspected and copied as bytes
//   - Size reports the true allocation, including alignment slack
//
// # Safety
//
// Only pointer-free element types (the Plain constraint) may be stored in a
// block. Accessors panic on misaligned or out-of-range regions.
package arena
