package update

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/tensorcore/value"
)

// Kind selects the partial update performed by a Request.
type Kind int

const (
	// KindModify applies Fn to the cells addressed by Operand.
	KindModify Kind = iota
	// KindModifyWithDefaults is KindModify creating missing subspaces.
	KindModifyWithDefaults
	// KindAdd inserts or replaces the subspaces of Operand.
	KindAdd
	// KindRemove deletes the subspaces addressed by Operand.
	KindRemove
)

func (k Kind) String() string {
	switch k {
	case KindModify:
		return "modify"
	case KindModifyWithDefaults:
		return "modify_with_defaults"
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Request is one independent partial update.
type Request struct {
	Kind    Kind
	Input   value.Value
	Operand value.Value
	// Fn is required for the modify kinds.
	Fn JoinFunc
	// Default is the initial cell value for KindModifyWithDefaults.
	Default float64
}

// Result is the outcome of one Request.
type Result struct {
	Value value.Value
	Err   error
}

// ApplyAll runs independent requests concurrently and returns their
// results in request order. Operand errors are reported per result; the
// returned error is only set when ctx is cancelled.
//
// Requests must not share builders, but may share read-only input values.
func ApplyAll(ctx context.Context, reqs []Request, f value.BuilderFactory, opts ...Option) ([]Result, error) {
	o := newOptions(opts)
	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := apply(gctx, reqs[i], f, o)
			results[i] = Result{Value: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	o.logger.LogBatch(ctx, len(reqs), failed)
	return results, nil
}

func apply(ctx context.Context, r Request, f value.BuilderFactory, o options) (value.Value, error) {
	if (r.Kind == KindModify || r.Kind == KindModifyWithDefaults) && r.Fn == nil {
		return nil, fmt.Errorf("update: %s request without join function", r.Kind)
	}
	switch r.Kind {
	case KindModify:
		return modify(ctx, r.Input, r.Fn, r.Operand, nil, f, o)
	case KindModifyWithDefaults:
		d := r.Default
		return modify(ctx, r.Input, r.Fn, r.Operand, &d, f, o)
	case KindAdd:
		return add(ctx, r.Input, r.Operand, f, o)
	case KindRemove:
		return remove(ctx, r.Input, r.Operand, f, o)
	default:
		return nil, fmt.Errorf("update: unknown request kind %s", r.Kind)
	}
}
