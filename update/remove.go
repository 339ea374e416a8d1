package update

import (
	"context"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tensorcore"
	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/label"
	"github.com/hupe1980/tensorcore/value"
)

type removeKernel func(input, removeSpec value.Value, f value.BuilderFactory) (value.Value, int)

var removeKernels = [4]removeKernel{
	performRemove[float64],
	performRemove[float32],
	performRemove[cell.BF16],
	performRemove[cell.I8],
}

// Remove returns input without the subspaces addressed by removeSpec. Only
// the addresses of removeSpec matter; its cells are ignored. Both tensors
// must have identical mapped dimensions, and there must be at least one.
func Remove(input, removeSpec value.Value, f value.BuilderFactory, opts ...Option) (value.Value, error) {
	return remove(context.Background(), input, removeSpec, f, newOptions(opts))
}

func remove(ctx context.Context, input, removeSpec value.Value, f value.BuilderFactory, o options) (value.Value, error) {
	inType, specType := input.Type(), removeSpec.Type()
	if !slices.Equal(inType.MappedDimensions(), specType.MappedDimensions()) {
		err := &tensorcore.TypeMismatchError{Op: "remove", Input: inType.String(), Other: specType.String()}
		o.logger.LogRejected(ctx, "remove", inType.String(), specType.String(), err)
		return nil, err
	}
	if inType.NumMappedDimensions() == 0 {
		o.logger.LogRejected(ctx, "remove", inType.String(), specType.String(), tensorcore.ErrDenseRemove)
		return nil, tensorcore.ErrDenseRemove
	}
	out, removed := removeKernels[inType.CellType()](input, removeSpec, f)
	o.logger.LogUpdate(ctx, "remove", input.Index().Size(), out.Index().Size(), removed)
	return out, nil
}

func performRemove[ICT cell.Cell](input, removeSpec value.Value, f value.BuilderFactory) (value.Value, int) {
	t := input.Type()
	numMapped := t.NumMappedDimensions()
	dsss := t.DenseSubspaceSize()

	addr := make([]label.Label, numMapped)
	lookup := input.Index().CreateView(value.AllMappedDims(numMapped))
	removed := roaring.New()

	specView := removeSpec.Index().CreateView(nil)
	specView.Lookup(nil)
	for {
		if _, ok := specView.Next(addr); !ok {
			break
		}
		lookup.Lookup(addr)
		if idx, ok := lookup.Next(nil); ok {
			removed.Add(idx)
		}
	}

	kept := input.Index().Size() - int(removed.GetCardinality())
	b := value.CreateBuilder[ICT](f, t, numMapped, dsss, kept)
	inCells := cell.Typed[ICT](input.Cells())
	inView := input.Index().CreateView(nil)
	inView.Lookup(nil)
	for {
		idx, ok := inView.Next(addr)
		if !ok {
			break
		}
		if removed.Contains(idx) {
			continue
		}
		off := int(idx) * dsss
		copy(b.AddSubspace(addr), inCells[off:off+dsss])
	}
	return b.Build(), int(removed.GetCardinality())
}
