package update

import (
	"testing"

	"github.com/hupe1980/tensorcore/testutil"
)

func BenchmarkModify(b *testing.B) {
	rng := testutil.NewRNG(4711)
	for _, f := range factories {
		b.Run(f.name, func(b *testing.B) {
			input := rng.Spec("tensor<float>(x{},y[16])", 1000, 5000).MustValue(f.factory)
			modifier := rng.Spec("tensor<float>(x{},y{})", 100, 5000).MustValue(f.factory)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Modify(input, OpAdd, modifier, f.factory, quiet()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAdd(b *testing.B) {
	rng := testutil.NewRNG(4711)
	for _, f := range factories {
		b.Run(f.name, func(b *testing.B) {
			input := rng.Spec("tensor<bfloat16>(x{},y{})", 5000, 200).MustValue(f.factory)
			cells := rng.Spec("tensor<bfloat16>(x{},y{})", 500, 200).MustValue(f.factory)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Add(input, cells, f.factory, quiet()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
