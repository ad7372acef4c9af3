package app

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
)

type CloseFunc func() error

func (instance *Instance) AddCloseFunc(fn CloseFunc) {
	instance.AddCloser(&closeWrapper{fn: fn})
}

type closeWrapper struct {
	fn CloseFunc
}

func (w *closeWrapper) Close() error {
	return w.fn()
}

func (instance *Instance) AddCloser(closer io.Closer) {
	instance.closers = append(instance.closers, closer)
}

func (instance *Instance) Stop(failed bool) {
	instance.failed = failed || instance.failed
	instance.stopOnce.Do(func() { close(instance.stop) })
}

// WaitForFinish blocks until SIGINT/SIGTERM or Stop, then cancels the root
// context and runs every registered closer.
func (instance *Instance) WaitForFinish() {
	done := make(chan bool)
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		signal.Notify(sigint, syscall.SIGTERM)
		select {
		case <-sigint:
		case <-instance.stop:
		}

		instance.cancel()

		var wg sync.WaitGroup
		wg.Add(len(instance.closers))
		for i := range instance.closers {
			go func(i int) {
				defer wg.Done()
				if err := instance.closers[i].Close(); err != nil {
					log.Printf("failed to close: %s", err)
					instance.failed = true
				}
			}(i)
		}
		wg.Wait()

		if instance.failed {
			os.Exit(1)
		}

		close(done)
	}()

	<-done
}
