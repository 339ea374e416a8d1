// Package conv checks the narrowing conversions used when counts and
// offsets are stored in the 32-bit fields of packed tensors.
package conv
