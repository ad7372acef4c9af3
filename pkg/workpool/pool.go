package workpool

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	MaxWorkers int
	QueueSize  int
}

var ErrInvalidMaxWorkers = fmt.Errorf("invalid max workers")
var ErrInvalidQueueSize = fmt.Errorf("invalid queue size")
var ErrPoolFinished = fmt.Errorf("pool is finished")

func NewConfig(maxWorkers, queueSize int) (*Config, error) {
	if maxWorkers < 1 {
		return nil, ErrInvalidMaxWorkers
	}
	if queueSize < 1 {
		return nil, ErrInvalidQueueSize
	}
	return &Config{
		MaxWorkers: maxWorkers,
		QueueSize:  queueSize,
	}, nil
}

type Task func(ctx context.Context)

// Pool runs submitted tasks on a fixed number of worker goroutines. Workers
// receive the pool context, which is cancelled on Finish; tasks already
// running are expected to observe the context and return.
type Pool struct {
	config *Config
	ctx    context.Context
	cancel context.CancelFunc
	tasks  chan Task
	wg     sync.WaitGroup
}

func NewPool(ctx context.Context, cfg *Config) *Pool {
	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(chan Task, cfg.QueueSize),
	}
}

func (p *Pool) Start() {
	p.wg.Add(p.config.MaxWorkers)
	for i := 0; i < p.config.MaxWorkers; i++ {
		go func() {
			defer p.wg.Done()

			for {
				select {
				case <-p.ctx.Done():
					log.Debugln("workpool worker shutting down")
					return
				case task := <-p.tasks:
					task(p.ctx)
				}
			}
		}()
	}
}

// Submit queues a task for execution. It blocks while the queue is full and
// fails once the pool is finished.
func (p *Pool) Submit(task Task) error {
	select {
	case <-p.ctx.Done():
		return ErrPoolFinished
	case p.tasks <- task:
		return nil
	}
}

// Finish cancels the pool context and waits for the workers to exit. Queued
// tasks that never started are abandoned.
func (p *Pool) Finish() {
	p.cancel()
	p.wg.Wait()
}
