package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParallelMap applies fn to every element of in using at most limit goroutines
// and returns the results in input order. Each goroutine writes only its own
// slot of the output, so fn needs no locking as long as it is pure.
//
// The first error cancels the context handed to fn and is returned; ctx
// cancellation stops scheduling of the remaining elements.
func ParallelMap[T, R any](ctx context.Context, limit int, in []T, fn func(ctx context.Context, i int, item T) (R, error)) ([]R, error) {
	out := make([]R, len(in))
	if len(in) == 0 {
		return out, nil
	}
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range in {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r, err := fn(gctx, i, item)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
