// Package bf16 implements bfloat16 ("brain floating point") encoding/decoding.
//
// This package is internal: bfloat16 is a storage format for tensor cells,
// arithmetic always happens in float32/float64.
package bf16

import (
	"math"
)

// Bits is the raw bfloat16 bit-pattern.
//
// Layout (the upper half of an IEEE-754 binary32):
//
//	sign: 1 bit
//	exp:  8 bits (bias 127)
//	frac: 7 bits
type Bits uint16

const (
	expMask  Bits = 0x7F80
	fracMask Bits = 0x007F
	quietBit Bits = 0x0040
)

// ToFloat32 converts a bfloat16 bit-pattern to float32. The conversion is exact.
func ToFloat32(h Bits) float32 {
	return math.Float32frombits(uint32(h) << 16)
}

// FromFloat32 converts a float32 value into a bfloat16 bit-pattern.
//
// Rounding mode: round-to-nearest, ties-to-even. NaN stays NaN.
func FromFloat32(f float32) Bits {
	bits := math.Float32bits(f)
	if math.IsNaN(float64(f)) {
		// Keep the sign and force a quiet NaN so truncation cannot turn it into Inf.
		return Bits(bits>>16) | expMask | quietBit
	}
	lsb := (bits >> 16) & 1
	bits += 0x7FFF + lsb
	return Bits(bits >> 16)
}

// Truncate converts a float32 by dropping the low 16 bits.
// It is cheaper than FromFloat32 but biased toward zero.
func Truncate(f float32) Bits {
	return Bits(math.Float32bits(f) >> 16)
}

// IsNaN reports whether h encodes a NaN.
func IsNaN(h Bits) bool {
	return h&expMask == expMask && h&fracMask != 0
}

// Decode converts a slice of bfloat16 bit-patterns to float32.
// dst must have length >= len(src).
func Decode(dst []float32, src []Bits) {
	for i := range src {
		dst[i] = ToFloat32(src[i])
	}
}

// Encode converts a slice of float32 to bfloat16.
// dst must have length >= len(src).
func Encode(dst []Bits, src []float32) {
	for i := range src {
		dst[i] = FromFloat32(src[i])
	}
}
