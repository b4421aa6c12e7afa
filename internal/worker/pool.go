package worker

import (
	"context"
	"sync"
)

// Outcome pairs an input with its result or error.
type Outcome[T any, R any] struct {
	Input T
	Value R
	Err   error
}

// Run processes all inputs with at most workers goroutines and returns
// outcomes in input order. A cancelled context stops new work from being
// dispatched; outcomes already produced are kept.
func Run[T any, R any](ctx context.Context, workers int, inputs []T, fn func(context.Context, T) (R, error)) []Outcome[T, R] {
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]Outcome[T, R], len(inputs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				value, err := fn(ctx, inputs[idx])
				outcomes[idx] = Outcome[T, R]{Input: inputs[idx], Value: value, Err: err}
			}
		}()
	}

dispatch:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return outcomes
}
