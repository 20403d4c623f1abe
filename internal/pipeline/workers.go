package pipeline

import "sync"

// workerPool bounds how many runs execute concurrently. Submission never
// blocks the caller; a queued run's goroutine waits on the semaphore while
// its status stays observable.
type workerPool struct {
	sem chan struct{}
	wg  sync.WaitGroup
}

func newWorkerPool(maxConcurrent int) *workerPool {
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	return &workerPool{sem: make(chan struct{}, maxConcurrent)}
}

func (p *workerPool) submit(fn func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.sem <- struct{}{}
		defer func() { <-p.sem }()
		fn()
	}()
}

// wait blocks until all submitted runs have finished.
func (p *workerPool) wait() {
	p.wg.Wait()
}
