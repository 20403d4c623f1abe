package pipeline

import "context"

// Orchestrator sequences the four pipeline stages and tracks per-run status
// for asynchronous callers.
type Orchestrator interface {
	// Submit registers a run and executes it on a pooled worker. The
	// returned id can be polled immediately.
	Submit(ctx context.Context, inputPath string) string
	// Process executes a run synchronously and returns its final snapshot.
	Process(ctx context.Context, inputPath string) (Run, error)
	// Status returns a snapshot of the run, which may be any intermediate
	// state. It never blocks waiting for completion.
	Status(id string) (Run, bool)
	// Wait blocks until all submitted runs have finished.
	Wait()
}
