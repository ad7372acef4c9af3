package workpool

import "context"

// Future holds the eventual result of a task submitted with Run.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Wait blocks until the task finished or ctx is cancelled.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-f.done:
		return f.value, f.err
	}
}

// Run submits fn to the pool and returns a Future for its result. The
// function receives a context derived from both the pool context and the
// caller context, so either side can cancel it.
func Run[T any](p *Pool, ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	future := &Future[T]{done: make(chan struct{})}

	err := p.Submit(func(poolCtx context.Context) {
		defer close(future.done)

		taskCtx, cancel := mergeContexts(poolCtx, ctx)
		defer cancel()

		future.value, future.err = fn(taskCtx)
	})
	if err != nil {
		future.err = err
		close(future.done)
	}
	return future
}

func mergeContexts(primary, secondary context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(primary)
	stop := context.AfterFunc(secondary, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
