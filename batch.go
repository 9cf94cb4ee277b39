package qrio

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one decode in a batch.
type Outcome struct {
	Result *Result
	Err    error
}

// DecodeAll decodes every bitmap on its own goroutine, at most opts.Workers
// at a time. Outcomes are in input order. A failed decode does not stop the
// others; once ctx is done, decodes that have not started report ctx.Err().
func DecodeAll(ctx context.Context, bitmaps []Bitmap, opts *Options) []Outcome {
	o := opts.withDefaults()
	outcomes := make([]Outcome, len(bitmaps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i, bitmap := range bitmaps {
		i, bitmap := i, bitmap
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Result, outcomes[i].Err = Decode(bitmap, &o)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}
