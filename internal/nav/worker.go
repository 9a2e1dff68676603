package nav

import (
	"context"
	"sync"
)

// worker serializes blocking OS work on one dedicated goroutine, keeping
// foreground calls and keystroke emission off the protocol event loop.
// Runs may proceed concurrently, but the focus-and-type critical section
// is global: the OS has a single foreground window and a single input
// queue, so interleaving two injections would cross their keystrokes.
type worker struct {
	jobs      chan func()
	closeOnce sync.Once
}

func newWorker() *worker {
	w := &worker{jobs: make(chan func())}
	go w.loop()
	return w
}

func (w *worker) loop() {
	for fn := range w.jobs {
		fn()
	}
}

// do runs fn on the worker goroutine and waits for it to return. ctx
// gates admission only: a job that has started always runs to completion
// so an injection is never abandoned with keys held down. fn receives
// ctx and is expected to bail out at its own safe points.
func (w *worker) do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	select {
	case w.jobs <- func() { done <- fn(ctx) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-done
}

func (w *worker) close() {
	w.closeOnce.Do(func() { close(w.jobs) })
}
