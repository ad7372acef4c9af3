package workpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestPool(t *testing.T, workers int) *Pool {
	cfg, err := NewConfig(workers, 64)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	pool := NewPool(context.Background(), cfg)
	pool.Start()
	t.Cleanup(pool.Finish)
	return pool
}

func TestRunReturnsResult(t *testing.T) {
	pool := newTestPool(t, 2)

	future := Run(pool, context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})

	value, err := future.Wait(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 42, value)
}

func TestConcurrencyBoundedByWorkers(t *testing.T) {
	const workers = 4
	pool := newTestPool(t, workers)

	var running, peak int64
	release := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < workers*4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			future := Run(pool, context.Background(), func(ctx context.Context) (struct{}, error) {
				now := atomic.AddInt64(&running, 1)
				for {
					prev := atomic.LoadInt64(&peak)
					if now <= prev || atomic.CompareAndSwapInt64(&peak, prev, now) {
						break
					}
				}
				<-release
				atomic.AddInt64(&running, -1)
				return struct{}{}, nil
			})
			_, _ = future.Wait(context.Background())
		}()
	}

	// Let the workers pick up whatever they can, then release everything.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(workers))
}

func TestSubmitAfterFinishFails(t *testing.T) {
	cfg, err := NewConfig(1, 1)
	assert.Nil(t, err)
	pool := NewPool(context.Background(), cfg)
	pool.Start()
	pool.Finish()

	err = pool.Submit(func(ctx context.Context) {})
	assert.Equal(t, ErrPoolFinished, err)

	future := Run(pool, context.Background(), func(ctx context.Context) (int, error) {
		return 1, nil
	})
	_, err = future.Wait(context.Background())
	assert.Equal(t, ErrPoolFinished, err)
}

func TestWaitHonorsCallerContext(t *testing.T) {
	pool := newTestPool(t, 1)

	block := make(chan struct{})
	defer close(block)
	future := Run(pool, context.Background(), func(ctx context.Context) (int, error) {
		<-block
		return 0, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := future.Wait(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)
}
