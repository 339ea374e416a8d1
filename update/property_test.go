package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/packed"
	"github.com/hupe1980/tensorcore/streamed"
	"github.com/hupe1980/tensorcore/tensorspec"
	"github.com/hupe1980/tensorcore/testutil"
	"github.com/hupe1980/tensorcore/value"
)

func TestAddRemove_RandomizedProperties(t *testing.T) {
	rng := testutil.NewRNG(4711)
	for _, ct := range cell.Types {
		for _, dims := range []string{"x{}", "x{},y{}", "x{},y[3]", "a{},b[2],c{}"} {
			typ := "tensor<" + ct.String() + ">(" + dims + ")"
			t.Run(typ, func(t *testing.T) {
				input := rng.Spec(typ, 40, 8)
				operand := rng.Spec(typ, 20, 8)

				var results []*tensorspec.Spec
				for _, f := range factories {
					in := input.MustValue(f.factory)
					op := operand.MustValue(f.factory)

					added, err := Add(in, op, f.factory, quiet())
					require.NoError(t, err)
					again, err := Add(added, op, f.factory, quiet())
					require.NoError(t, err)
					assert.True(t, tensorspec.FromValue(added).Equal(tensorspec.FromValue(again)), "add is idempotent")

					removedAfterAdd, err := Remove(added, op, f.factory, quiet())
					require.NoError(t, err)
					removed, err := Remove(in, op, f.factory, quiet())
					require.NoError(t, err)
					assert.True(t, tensorspec.FromValue(removed).Equal(tensorspec.FromValue(removedAfterAdd)))

					results = append(results, tensorspec.FromValue(added))
				}
				assert.True(t, results[0].Equal(results[1]), "representations agree")
			})
		}
	}
}

func TestModify_RandomizedReplaceMatchesSpec(t *testing.T) {
	rng := testutil.NewRNG(42)
	input := rng.Spec("tensor<float>(x{},y{})", 60, 10)
	modifier := rng.Spec("tensor(x{},y{})", 30, 12)

	want := tensorspec.New(input.Type())
	for _, c := range input.Cells() {
		want.Add(c.Address, c.Value)
	}
	for _, c := range modifier.Cells() {
		if _, ok := input.Get(c.Address); ok {
			want.Add(c.Address, c.Value)
		}
	}

	out, err := Modify(input.MustValue(streamed.Factory()), OpReplace, modifier.MustValue(packed.Factory()), packed.Factory(), quiet())
	require.NoError(t, err)
	assert.True(t, want.Equal(tensorspec.FromValue(out)))
}

// mappedKey returns the key of the mapped part of addr.
func mappedKey(addr tensorspec.Address, mapped []value.Dimension) string {
	part := make(tensorspec.Address, len(mapped))
	for _, d := range mapped {
		part[d.Name] = addr[d.Name]
	}
	return part.Key()
}

func TestRemoveThenAddRestores_RandomizedProperties(t *testing.T) {
	rng := testutil.NewRNG(1234)
	for _, ct := range cell.Types {
		for _, dims := range []string{"x{}", "x{},y{}", "x{},y[3]", "a{},b[2],c{}"} {
			typ := "tensor<" + ct.String() + ">(" + dims + ")"
			t.Run(typ, func(t *testing.T) {
				input := rng.Spec(typ, 40, 8)
				selection := rng.Spec(typ, 10, 8)
				mapped := value.MustParseType(typ).MappedDimensions()

				selected := make(map[string]bool)
				for _, c := range selection.Cells() {
					selected[mappedKey(c.Address, mapped)] = true
				}
				restore := tensorspec.New(typ)
				for _, c := range input.Cells() {
					if selected[mappedKey(c.Address, mapped)] {
						restore.Add(c.Address, c.Value)
					}
				}

				for _, f := range factories {
					in := input.MustValue(f.factory)
					removed, err := Remove(in, selection.MustValue(f.factory), f.factory, quiet())
					require.NoError(t, err)
					restored, err := Add(removed, restore.MustValue(f.factory), f.factory, quiet())
					require.NoError(t, err)
					assert.True(t, input.Equal(tensorspec.FromValue(restored)), "%s: %s", f.name, tensorspec.FromValue(restored))
				}
			})
		}
	}
}
