package update

import (
	"context"

	"github.com/hupe1980/tensorcore/cell"
	"github.com/hupe1980/tensorcore/internal/mappings"
	"github.com/hupe1980/tensorcore/label"
	"github.com/hupe1980/tensorcore/value"
)

type modifyKernel func(input, modifier value.Value, fn JoinFunc, h *addressHandler, defaults *float64, f value.BuilderFactory) (value.Value, int)

// modifyKernels is indexed by [input cell type][modifier cell type].
var modifyKernels = [4][4]modifyKernel{
	{performModify[float64, float64], performModify[float64, float32], performModify[float64, cell.BF16], performModify[float64, cell.I8]},
	{performModify[float32, float64], performModify[float32, float32], performModify[float32, cell.BF16], performModify[float32, cell.I8]},
	{performModify[cell.BF16, float64], performModify[cell.BF16, float32], performModify[cell.BF16, cell.BF16], performModify[cell.BF16, cell.I8]},
	{performModify[cell.I8, float64], performModify[cell.I8, float32], performModify[cell.I8, cell.BF16], performModify[cell.I8, cell.I8]},
}

// Modify returns a copy of input where every cell addressed by modifier is
// replaced by fn(old, modifierCell).
//
// modifier must be sparse and have the same dimension names as input;
// input's indexed dimensions are addressed by decimal labels. Modifier
// cells that do not resolve to an existing input cell are skipped.
func Modify(input value.Value, fn JoinFunc, modifier value.Value, f value.BuilderFactory, opts ...Option) (value.Value, error) {
	return modify(context.Background(), input, fn, modifier, nil, f, newOptions(opts))
}

// ModifyWithDefaults is like Modify, but a modifier cell whose subspace is
// missing from input first creates that subspace with every cell set to
// defaultCell.
func ModifyWithDefaults(input value.Value, fn JoinFunc, modifier value.Value, defaultCell float64, f value.BuilderFactory, opts ...Option) (value.Value, error) {
	return modify(context.Background(), input, fn, modifier, &defaultCell, f, newOptions(opts))
}

func modify(ctx context.Context, input value.Value, fn JoinFunc, modifier value.Value, defaults *float64, f value.BuilderFactory, o options) (value.Value, error) {
	h, err := newAddressHandler(input.Type(), modifier.Type())
	if err != nil {
		o.logger.LogRejected(ctx, "modify", input.Type().String(), modifier.Type().String(), err)
		return nil, err
	}
	kernel := modifyKernels[input.Type().CellType()][modifier.Type().CellType()]
	out, skipped := kernel(input, modifier, fn, h, defaults, f)
	o.logger.LogUpdate(ctx, "modify", input.Index().Size(), out.Index().Size(), skipped)
	return out, nil
}

func performModify[ICT, MCT cell.Cell](input, modifier value.Value, fn JoinFunc, h *addressHandler, defaults *float64, f value.BuilderFactory) (value.Value, int) {
	t := input.Type()
	numMapped := t.NumMappedDimensions()
	dsss := t.DenseSubspaceSize()

	var out value.Value
	if defaults == nil {
		out = value.Copy(input, f)
	} else {
		out = copyWithDefaults[ICT](input, modifier, h, *defaults, f)
	}

	// out is not published yet, so its cells may still be written.
	outCells := cell.Typed[ICT](out.Cells())
	modCells := cell.Typed[MCT](modifier.Cells())

	modAddr := make([]label.Label, len(modifier.Type().Dimensions()))
	modView := modifier.Index().CreateView(nil)
	lookup := out.Index().CreateView(value.AllMappedDims(numMapped))

	skipped := 0
	modView.Lookup(nil)
	for {
		modIdx, ok := modView.Next(modAddr)
		if !ok {
			break
		}
		offset, ok := h.handle(modAddr)
		if !ok {
			skipped++
			continue
		}
		lookup.Lookup(h.lookup)
		outIdx, ok := lookup.Next(nil)
		if !ok {
			skipped++
			continue
		}
		dst := &outCells[int(outIdx)*dsss+offset]
		*dst = cell.FromFloat64[ICT](fn(cell.ToFloat64(*dst), cell.ToFloat64(modCells[modIdx])))
	}
	return out, skipped
}

// copyWithDefaults copies input and appends a subspace filled with
// defaultCell for every modifier address missing from input.
func copyWithDefaults[ICT cell.Cell](input, modifier value.Value, h *addressHandler, defaultCell float64, f value.BuilderFactory) value.Value {
	t := input.Type()
	numMapped := t.NumMappedDimensions()
	dsss := t.DenseSubspaceSize()

	var missing [][]label.Label
	seen := mappings.NewBuilder(numMapped)
	modAddr := make([]label.Label, len(modifier.Type().Dimensions()))
	modView := modifier.Index().CreateView(nil)
	lookup := input.Index().CreateView(value.AllMappedDims(numMapped))
	modView.Lookup(nil)
	for {
		if _, ok := modView.Next(modAddr); !ok {
			break
		}
		if _, ok := h.handle(modAddr); !ok {
			continue
		}
		lookup.Lookup(h.lookup)
		if _, ok := lookup.Next(nil); ok {
			continue
		}
		if int(seen.AddMappingFor(h.lookup)) < len(missing) {
			continue
		}
		missing = append(missing, append([]label.Label(nil), h.lookup...))
	}

	b := value.CreateBuilder[ICT](f, t, numMapped, dsss, input.Index().Size()+len(missing))
	inCells := cell.Typed[ICT](input.Cells())
	addr := make([]label.Label, numMapped)
	inView := input.Index().CreateView(nil)
	inView.Lookup(nil)
	for {
		idx, ok := inView.Next(addr)
		if !ok {
			break
		}
		off := int(idx) * dsss
		copy(b.AddSubspace(addr), inCells[off:off+dsss])
	}
	fill := cell.FromFloat64[ICT](defaultCell)
	for _, a := range missing {
		dst := b.AddSubspace(a)
		for i := range dst {
			dst[i] = fill
		}
	}
	return b.Build()
}
