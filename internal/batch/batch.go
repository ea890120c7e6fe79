// Package batch measures several inputs concurrently while keeping results
// in input order.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Item is the outcome for one input. Err is per input and never aborts the
// rest of the batch. Inputs that were never started carry context.Canceled.
type Item[T any] struct {
	Input string
	Value T
	Err   error
}

// Run calls fn for every input with at most jobs calls in flight. The
// returned slice has one entry per input, in input order. Only a cancelled
// context stops the batch early.
func Run[T any](ctx context.Context, inputs []string, jobs int, fn func(ctx context.Context, input string) (T, error)) ([]Item[T], error) {
	if jobs < 1 {
		jobs = 1
	}

	items := make([]Item[T], len(inputs))
	for i, input := range inputs {
		items[i] = Item[T]{Input: input, Err: context.Canceled}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i].Value, items[i].Err = fn(gctx, input)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, ctx.Err()
}
