package bf16

import (
	"math"
	"testing"
)

func TestToFloat32_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		in   Bits
		want float32
	}{
		{"+0", 0x0000, 0},
		{"+1", 0x3F80, 1},
		{"-1", 0xBF80, -1},
		{"+2", 0x4000, 2},
		{"+Inf", 0x7F80, float32(math.Inf(1))},
		{"-Inf", 0xFF80, float32(math.Inf(-1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToFloat32(tt.in); got != tt.want {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestFromFloat32_ZeroSigns(t *testing.T) {
	if got := FromFloat32(0); got != 0x0000 {
		t.Fatalf("+0 got=%04x", uint16(got))
	}
	if got := FromFloat32(float32(math.Copysign(0, -1))); got != 0x8000 {
		t.Fatalf("-0 got=%04x", uint16(got))
	}
}

func TestFromFloat32_NaN(t *testing.T) {
	got := FromFloat32(float32(math.NaN()))
	if !IsNaN(got) {
		t.Fatalf("nan encoding not NaN: %04x", uint16(got))
	}
	if !math.IsNaN(float64(ToFloat32(got))) {
		t.Fatalf("decoded value is not NaN")
	}

	// A NaN whose payload lives only in the low 16 bits must not become Inf.
	low := math.Float32frombits(0x7F800001)
	if got := FromFloat32(low); !IsNaN(got) {
		t.Fatalf("low-payload nan became %04x", uint16(got))
	}
}

func TestFromFloat32_SmallIntegersExact(t *testing.T) {
	for i := -256; i <= 256; i++ {
		f := float32(i)
		if g := ToFloat32(FromFloat32(f)); g != f {
			t.Fatalf("i=%d got=%v", i, g)
		}
	}
}

func TestFromFloat32_RoundingTiesToEven(t *testing.T) {
	// Around 1.0 in bfloat16: step = 2^-7.
	base := float32(1.0)
	step := float32(math.Ldexp(1, -7))

	if got := FromFloat32(base + step/2); got != 0x3F80 {
		t.Fatalf("halfway up from 1.0 should round to 1.0, got=%04x", uint16(got))
	}
	if got := FromFloat32(base + step + step/2); got != 0x3F82 {
		t.Fatalf("halfway with odd lower should round up, got=%04x", uint16(got))
	}
	if got := Truncate(base + step + step/2); got != 0x3F81 {
		t.Fatalf("truncate got=%04x", uint16(got))
	}
}

func TestEncodeDecode_Slices(t *testing.T) {
	src := []float32{0, 1, -2, 3.5, float32(math.Inf(1))}
	h := make([]Bits, len(src))
	Encode(h, src)

	got := make([]float32, len(src))
	Decode(got, h)

	for i := 0; i < 4; i++ {
		if got[i] != src[i] {
			t.Fatalf("idx=%d got=%v want=%v", i, got[i], src[i])
		}
	}
	if !math.IsInf(float64(got[4]), 1) {
		t.Fatalf("inf got=%v", got[4])
	}
}
