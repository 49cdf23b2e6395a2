// Package worker runs batches of independent tasks across a bounded
// goroutine pool and collects the first error, backing
// measure.Parallelizer for feature plug-ins that can run concurrently.
package worker

import "runtime"

// Pool runs batches of independent tasks across a fixed number of
// goroutines.
type Pool struct {
	size int
}

// NewPool returns a Pool with the given number of workers. size <= 0
// uses runtime.NumCPU().
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &Pool{size: size}
}

// Run executes tasks across the pool's workers and returns the first
// error encountered, after every task has finished (tasks already in
// flight are not cancelled on a sibling's error). Suitable as a
// measure.Parallelizer.
func (p *Pool) Run(tasks []func() error) error {
	if len(tasks) == 0 {
		return nil
	}
	workers := p.size
	if workers > len(tasks) {
		workers = len(tasks)
	}

	jobs := make(chan func() error)
	errs := make(chan error, len(tasks))

	for i := 0; i < workers; i++ {
		go func() {
			for job := range jobs {
				errs <- job()
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, task := range tasks {
			jobs <- task
		}
	}()

	var firstErr error
	for i := 0; i < len(tasks); i++ {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
