package value_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/label"
	"github.com/hupe1980/tensorcore/packed"
	"github.com/hupe1980/tensorcore/streamed"
	"github.com/hupe1980/tensorcore/tensorspec"
	"github.com/hupe1980/tensorcore/value"
)

var factories = []struct {
	name    string
	factory value.BuilderFactory
}{
	{"streamed", streamed.Factory()},
	{"packed", packed.Factory()},
}

func specs(cellType string) []*tensorspec.Spec {
	typ := func(dims string) string {
		if cellType == "double" {
			return "tensor(" + dims + ")"
		}
		return "tensor<" + cellType + ">(" + dims + ")"
	}
	return []*tensorspec.Spec{
		tensorspec.New(typ("")).Add(tensorspec.Address{}, 5),
		tensorspec.New(typ("x{}")),
		tensorspec.New(typ("x{},y{}")).
			Add(tensorspec.Address{"x": "1", "y": "1"}, 1).
			Add(tensorspec.Address{"x": "2", "y": "1"}, 3).
			Add(tensorspec.Address{"x": "1", "y": "2"}, 5),
		tensorspec.New(typ("x[3]")).
			Add(tensorspec.Address{"x": "0"}, 1).
			Add(tensorspec.Address{"x": "1"}, 0).
			Add(tensorspec.Address{"x": "2"}, -2),
		tensorspec.New(typ("x{},y[2]")).
			Add(tensorspec.Address{"x": "a", "y": "0"}, 1).
			Add(tensorspec.Address{"x": "a", "y": "1"}, 2).
			Add(tensorspec.Address{"x": "b", "y": "0"}, 3).
			Add(tensorspec.Address{"x": "b", "y": "1"}, 4),
	}
}

func checkInvariant(t *testing.T, v value.Value) {
	t.Helper()
	assert.Equal(t, v.Index().Size()*v.Type().DenseSubspaceSize(), v.Cells().Len())
	assert.Equal(t, v.Type().CellType(), v.Cells().Type())
}

func TestRepresentationEquivalence(t *testing.T) {
	for _, ct := range cell.Types {
		for _, spec := range specs(ct.String()) {
			t.Run(spec.Type(), func(t *testing.T) {
				var got []*tensorspec.Spec
				for _, f := range factories {
					v, err := spec.ToValue(f.factory)
					require.NoError(t, err, f.name)
					checkInvariant(t, v)
					assert.Equal(t, ct, v.Type().CellType())
					got = append(got, tensorspec.FromValue(v))
				}
				assert.True(t, spec.Equal(got[0]), "streamed: %s", got[0])
				assert.True(t, got[0].Equal(got[1]), "%s != %s", got[0], got[1])
			})
		}
	}
}

func TestCopy_BetweenRepresentations(t *testing.T) {
	spec := specs("float")[4]
	for _, from := range factories {
		for _, to := range factories {
			t.Run(from.name+"->"+to.name, func(t *testing.T) {
				src := spec.MustValue(from.factory)
				dst := value.Copy(src, to.factory)
				checkInvariant(t, dst)
				assert.True(t, src.Type().Equal(dst.Type()))
				assert.True(t, tensorspec.FromValue(src).Equal(tensorspec.FromValue(dst)))
			})
		}
	}
}

func sampleSparse(t *testing.T, f value.BuilderFactory) value.Value {
	t.Helper()
	return tensorspec.New("tensor(x{},y{},z{})").
		Add(tensorspec.Address{"x": "a", "y": "1", "z": "p"}, 1).
		Add(tensorspec.Address{"x": "a", "y": "2", "z": "p"}, 2).
		Add(tensorspec.Address{"x": "b", "y": "1", "z": "p"}, 3).
		Add(tensorspec.Address{"x": "a", "y": "1", "z": "q"}, 4).
		MustValue(f)
}

// results drains a view into "labels" -> cell value.
func results(v value.Value, view value.View, width int) map[string]float64 {
	out := make(map[string]float64)
	addr := make([]label.Label, width)
	for {
		idx, ok := view.Next(addr)
		if !ok {
			return out
		}
		out[strings.Join(label.Strings(addr), ",")] = value.Subspace[float64](v, idx)[0]
	}
}

func TestView_FullEnumeration(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			v := sampleSparse(t, f.factory)
			view := v.Index().CreateView(nil)
			view.Lookup(nil)
			assert.Equal(t, map[string]float64{
				"a,1,p": 1, "a,2,p": 2, "b,1,p": 3, "a,1,q": 4,
			}, results(v, view, 3))

			// Exhausted views stay exhausted until the next lookup.
			view.Lookup(nil)
			assert.Len(t, results(v, view, 3), 4)
		})
	}
}

func TestView_PointLookup(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			v := sampleSparse(t, f.factory)
			view := v.Index().CreateView([]int{0, 1, 2})

			view.Lookup(label.MakeAll("b", "1", "p"))
			idx, ok := view.Next(nil)
			require.True(t, ok)
			assert.Equal(t, 3.0, value.Subspace[float64](v, idx)[0])
			_, ok = view.Next(nil)
			assert.False(t, ok)

			view.Lookup(label.MakeAll("b", "2", "p"))
			_, ok = view.Next(nil)
			assert.False(t, ok)

			view.Lookup(label.MakeAll("c", "1", "p"))
			_, ok = view.Next(nil)
			assert.False(t, ok)
		})
	}
}

func TestView_FilteredScan(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			v := sampleSparse(t, f.factory)

			xz := v.Index().CreateView([]int{0, 2})
			xz.Lookup(label.MakeAll("a", "p"))
			assert.Equal(t, map[string]float64{"1": 1, "2": 2}, results(v, xz, 1))

			xz.Lookup(label.MakeAll("b", "q"))
			assert.Empty(t, results(v, xz, 1))

			xz.Lookup(label.MakeAll("unknown", "p"))
			assert.Empty(t, results(v, xz, 1))

			y := v.Index().CreateView([]int{1})
			y.Lookup(label.MakeAll("1"))
			assert.Equal(t, map[string]float64{"a,p": 1, "b,p": 3, "a,q": 4}, results(v, y, 2))
		})
	}
}

func TestView_ProtocolMisuse(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			v := sampleSparse(t, f.factory)
			assert.Panics(t, func() { v.Index().CreateView([]int{1, 0}) })
			assert.Panics(t, func() { v.Index().CreateView([]int{3}) })

			view := v.Index().CreateView([]int{1})
			assert.Panics(t, func() { view.Lookup(label.MakeAll("1", "2")) })
			view.Lookup(label.MakeAll("1"))
			assert.Panics(t, func() { view.Next(make([]label.Label, 1)) })
		})
	}
}

func TestView_DenseValue(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			v := specs("double")[3].MustValue(f.factory)
			require.Equal(t, 1, v.Index().Size())

			view := v.Index().CreateView(nil)
			view.Lookup(nil)
			idx, ok := view.Next(nil)
			require.True(t, ok)
			assert.Equal(t, []float64{1, 0, -2}, value.Subspace[float64](v, idx))
			_, ok = view.Next(nil)
			assert.False(t, ok)
		})
	}
}

func TestView_ConcurrentReaders(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			v := sampleSparse(t, f.factory)
			var wg sync.WaitGroup
			errs := make(chan error, 8)
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					view := v.Index().CreateView([]int{1})
					for j := 0; j < 100; j++ {
						view.Lookup(label.MakeAll("1"))
						if n := len(results(v, view, 2)); n != 3 {
							errs <- fmt.Errorf("got %d results", n)
							return
						}
					}
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				t.Error(err)
			}
		})
	}
}

func TestCreateBuilder_CellTypeMismatch(t *testing.T) {
	typ := value.MustParseType("tensor<float>(x{})")
	for _, f := range factories {
		assert.Panics(t, func() { value.CreateBuilder[float64](f.factory, typ, 1, 1, 0) }, f.name)
		assert.NotPanics(t, func() { value.NewBuilder[float32](f.factory, typ, 0) }, f.name)
		base := f.factory.CreateBuilderBase(typ, 1, 1, 0)
		assert.Equal(t, cell.Float, base.CellType())
		assert.Panics(t, func() { value.AsBuilder[cell.I8](base) }, f.name)
	}
}

func TestBuilder_EmptyDenseGetsOneSubspace(t *testing.T) {
	typ := value.MustParseType("tensor<int8>(x[4])")
	for _, f := range factories {
		v := value.NewBuilder[cell.I8](f.factory, typ, 1).Build()
		checkInvariant(t, v)
		assert.Equal(t, 1, v.Index().Size(), f.name)
		assert.Equal(t, []cell.I8{0, 0, 0, 0}, value.Subspace[cell.I8](v, 0))
	}
}
