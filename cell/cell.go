package cell

import (
	"fmt"
	"math"

	"github.com/hupe1980/tensorcore/internal/bf16"
)

// Type identifies the numeric type of every cell in a tensor.
type Type uint8

const (
	// Double is a 64-bit IEEE-754 float.
	Double Type = iota
	// Float is a 32-bit IEEE-754 float.
	Float
	// BFloat16 is the upper half of a 32-bit float.
	BFloat16
	// Int8 is a signed byte used as a float.
	Int8
)

// Types lists every supported cell type.
var Types = []Type{Double, Float, BFloat16, Int8}

// String returns the name used in tensor type specs.
func (t Type) String() string {
	switch t {
	case Double:
		return "double"
	case Float:
		return "float"
	case BFloat16:
		return "bfloat16"
	case Int8:
		return "int8"
	default:
		return fmt.Sprintf("cell.Type(%d)", uint8(t))
	}
}

// Size returns the number of bytes used by one cell.
func (t Type) Size() int {
	switch t {
	case Double:
		return 8
	case Float:
		return 4
	case BFloat16:
		return 2
	case Int8:
		return 1
	default:
		panic(fmt.Sprintf("cell: unknown type %d", uint8(t)))
	}
}

// ParseType returns the cell type with the given name.
func ParseType(name string) (Type, bool) {
	switch name {
	case "double":
		return Double, true
	case "float":
		return Float, true
	case "bfloat16":
		return BFloat16, true
	case "int8":
		return Int8, true
	default:
		return 0, false
	}
}

// BF16 is a bfloat16 cell.
type BF16 bf16.Bits

// NewBF16 rounds f to the nearest bfloat16.
func NewBF16(f float32) BF16 { return BF16(bf16.FromFloat32(f)) }

// Float32 returns the exact float32 value of the cell.
func (b BF16) Float32() float32 { return bf16.ToFloat32(bf16.Bits(b)) }

// I8 is a one-byte float cell. Values are truncated toward zero and
// saturated to [-128, 127] on conversion.
type I8 int8

// NewI8 converts f to an int8 cell.
func NewI8(f float64) I8 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt8:
		return math.MaxInt8
	case f <= math.MinInt8:
		return math.MinInt8
	default:
		return I8(int8(f))
	}
}

// Float32 returns the value of the cell.
func (i I8) Float32() float32 { return float32(i) }

// Cell is the constraint satisfied by every cell representation.
type Cell interface {
	float64 | float32 | BF16 | I8
}

// TypeOf returns the cell type for T.
func TypeOf[T Cell]() Type {
	var zero T
	switch any(zero).(type) {
	case float64:
		return Double
	case float32:
		return Float
	case BF16:
		return BFloat16
	default:
		return Int8
	}
}

// ToFloat64 widens a cell value to float64.
func ToFloat64[T Cell](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case BF16:
		return float64(x.Float32())
	case I8:
		return float64(x)
	}
	panic("cell: unreachable")
}

// FromFloat64 narrows a float64 to the cell type T.
func FromFloat64[T Cell](f float64) T {
	var out T
	switch p := any(&out).(type) {
	case *float64:
		*p = f
	case *float32:
		*p = float32(f)
	case *BF16:
		*p = NewBF16(float32(f))
	case *I8:
		*p = NewI8(f)
	}
	return out
}

// Convert copies src into dst, converting each cell.
// dst must have length >= len(src).
func Convert[To, From Cell](dst []To, src []From) {
	if d, ok := any(dst).([]From); ok {
		copy(d, src)
		return
	}
	for i, v := range src {
		dst[i] = FromFloat64[To](ToFloat64(v))
	}
}
