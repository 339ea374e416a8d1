package update

import (
	"runtime"

	"github.com/hupe1980/tensorcore"
)

type options struct {
	logger      *tensorcore.Logger
	concurrency int
}

// Option configures a partial update.
type Option func(*options)

// WithLogger sets the logger used to report rejected and completed updates.
//
// If nil is passed, a no-op logger is used.
func WithLogger(l *tensorcore.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = tensorcore.NoopLogger()
		}
		o.logger = l
	}
}

// WithConcurrency limits the number of updates ApplyAll runs at once.
// Values <= 0 select runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = tensorcore.NewLogger(nil)
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}
