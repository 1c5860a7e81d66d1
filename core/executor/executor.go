package executor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of asynchronous work producing a value of type T.
type Task[T any] func(ctx context.Context) (T, error)

// Result holds the outcome of a single task. Err is set when the task failed
// or panicked; Value is the zero value in that case.
type Result[T any] struct {
	Value T
	Err   error
}

// Run executes the tasks with at most limit of them in flight at once and
// returns one result per task, in input order, regardless of completion
// order. A failing or panicking task only affects its own result slot; the
// remaining tasks still run. An empty task list returns an empty slice
// immediately. A limit below 1 is treated as 1; a limit at or above the task
// count runs everything without queuing.
func Run[T any](ctx context.Context, tasks []Task[T], limit int) []Result[T] {
	results := make([]Result[T], len(tasks))
	if len(tasks) == 0 {
		return results
	}
	if limit < 1 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, task := range tasks {
		g.Go(func() error {
			results[i] = run(ctx, task)
			// Failures are isolated per slot; never cancel siblings.
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func run[T any](ctx context.Context, task Task[T]) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			res = Result[T]{Value: zero, Err: fmt.Errorf("task panicked: %v", r)}
		}
	}()

	value, err := task(ctx)
	return Result[T]{Value: value, Err: err}
}
