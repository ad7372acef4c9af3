package app

import (
	"context"
	"io"
	"sync"
)

// Instance tracks process-wide lifecycle: a root context cancelled on
// shutdown and the set of closers to run before exit.
type Instance struct {
	closers  []io.Closer
	failed   bool
	stop     chan bool
	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewInstance() *Instance {
	ctx, cancel := context.WithCancel(context.Background())
	return &Instance{
		stop:   make(chan bool),
		ctx:    ctx,
		cancel: cancel,
	}
}

func ContextFromInstance(instance *Instance) context.Context {
	return instance.ctx
}
