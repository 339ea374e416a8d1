package update

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tensorcore"
	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/label"
	"github.com/hupe1980/tensorcore/value"
)

type addKernel func(input, addCells value.Value, f value.BuilderFactory) (value.Value, int)

// addKernels is indexed by [input cell type][added cell type].
var addKernels = [4][4]addKernel{
	{performAdd[float64, float64], performAdd[float64, float32], performAdd[float64, cell.BF16], performAdd[float64, cell.I8]},
	{performAdd[float32, float64], performAdd[float32, float32], performAdd[float32, cell.BF16], performAdd[float32, cell.I8]},
	{performAdd[cell.BF16, float64], performAdd[cell.BF16, float32], performAdd[cell.BF16, cell.BF16], performAdd[cell.BF16, cell.I8]},
	{performAdd[cell.I8, float64], performAdd[cell.I8, float32], performAdd[cell.I8, cell.BF16], performAdd[cell.I8, cell.I8]},
}

// Add returns input with every subspace of addCells inserted, replacing
// subspaces with the same address. Both tensors must have identical
// dimensions; the result keeps input's cell type.
func Add(input, addCells value.Value, f value.BuilderFactory, opts ...Option) (value.Value, error) {
	return add(context.Background(), input, addCells, f, newOptions(opts))
}

func add(ctx context.Context, input, addCells value.Value, f value.BuilderFactory, o options) (value.Value, error) {
	if !input.Type().SameDimensions(addCells.Type()) {
		err := &tensorcore.TypeMismatchError{Op: "add", Input: input.Type().String(), Other: addCells.Type().String()}
		o.logger.LogRejected(ctx, "add", input.Type().String(), addCells.Type().String(), err)
		return nil, err
	}
	kernel := addKernels[input.Type().CellType()][addCells.Type().CellType()]
	out, overwritten := kernel(input, addCells, f)
	o.logger.LogUpdate(ctx, "add", input.Index().Size(), out.Index().Size(), overwritten)
	return out, nil
}

func performAdd[ICT, ACT cell.Cell](input, addCells value.Value, f value.BuilderFactory) (value.Value, int) {
	t := input.Type()
	numMapped := t.NumMappedDimensions()
	dsss := t.DenseSubspaceSize()
	b := value.CreateBuilder[ICT](f, t, numMapped, dsss, input.Index().Size()+addCells.Index().Size())

	addr := make([]label.Label, numMapped)
	lookup := input.Index().CreateView(value.AllMappedDims(numMapped))
	overwritten := roaring.New()

	src := cell.Typed[ACT](addCells.Cells())
	addView := addCells.Index().CreateView(nil)
	addView.Lookup(nil)
	for {
		idx, ok := addView.Next(addr)
		if !ok {
			break
		}
		lookup.Lookup(addr)
		if inIdx, ok := lookup.Next(nil); ok {
			overwritten.Add(inIdx)
		}
		off := int(idx) * dsss
		cell.Convert(b.AddSubspace(addr), src[off:off+dsss])
	}

	inCells := cell.Typed[ICT](input.Cells())
	inView := input.Index().CreateView(nil)
	inView.Lookup(nil)
	for {
		idx, ok := inView.Next(addr)
		if !ok {
			break
		}
		if overwritten.Contains(idx) {
			continue
		}
		off := int(idx) * dsss
		copy(b.AddSubspace(addr), inCells[off:off+dsss])
	}
	return b.Build(), int(overwritten.GetCardinality())
}
