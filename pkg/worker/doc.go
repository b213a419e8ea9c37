// Package worker provides a generic, thread-safe worker pool for concurrent task processing.
//
// # Overview
//
// The pool runs a fixed number of goroutines that take work items from a
// bounded channel:
//   - Generic type support for type-safe work processing
//   - Bounded queue with non-blocking Submit (ErrQueueFull on overflow)
//   - Context-aware cancellation and draining shutdown
//   - Always-on statistics plus optional Prometheus metrics
//
// The compiler uses it to compile many files in parallel. Each work item
// carries its own result slot, so the processor needs no shared state.
//
// # Basic Usage
//
//	type job struct {
//	    path string
//	    out  *Result
//	}
//
//	pool := worker.NewPool(runtime.NumCPU(), len(paths), func(ctx context.Context, j job) error {
//	    *j.out = compile(j.path)
//	    return j.out.Err
//	})
//
//	if err := pool.Start(ctx); err != nil {
//	    return err
//	}
//	for i, p := range paths {
//	    if err := pool.Submit(job{path: p, out: &results[i]}); err != nil {
//	        return err
//	    }
//	}
//	if err := pool.Stop(ctx); err != nil {
//	    return err
//	}
//
// # Lifecycle
//
// Start launches the workers. Submit enqueues without blocking. Stop closes
// the queue and waits until every queued item was processed or until the
// context passed to Stop is done, in which case it returns
// ErrStopInterrupted wrapping the context error. Stop may be retried after an
// interruption and is a no-op once the pool has stopped.
//
// Cancelling the context passed to Start makes workers exit immediately;
// items still queued are never processed.
//
// # Metrics
//
//	registry := metric.NewMetricsRegistry()
//	pool := worker.NewPool(4, 100, process,
//	    worker.WithMetricsRegistry[job](registry, "compile"))
//
// registers lore_worker_compile_{queue_depth,utilization,submitted_total,
// processed_total,failed_total,dropped_total,processing_duration_seconds}.
// A later pool with the same prefix on one registry replaces the earlier
// pool's collectors. If any registration fails, the metrics registered so far
// are removed again, the failure is logged through the WithLogger logger and
// the pool runs without metrics.
//
// # Errors
//
// All sentinel errors are returned unwrapped, except ErrStopInterrupted:
//   - ErrPoolNotStarted: Submit before Start
//   - ErrPoolAlreadyStarted: Start called twice
//   - ErrPoolStopped: Submit after Stop
//   - ErrQueueFull: queue at capacity
//   - ErrNilProcessor: panic value from NewPool
//   - ErrStopInterrupted: Stop gave up waiting
package worker
