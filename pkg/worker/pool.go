// Package worker provides a generic worker pool for concurrent task processing
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/lore/metric"
)

// Pool represents a generic worker pool that can process any work type T
type Pool[T any] struct {
	// Configuration
	workers   int
	queueSize int
	processor func(context.Context, T) error

	// Runtime state
	workChan chan T
	done     chan struct{}
	metrics  *Metrics
	wg       *sync.WaitGroup

	// Lifecycle management
	lifecycleMu sync.Mutex
	started     bool
	closed      bool
	stopped     bool

	// Statistics (atomic)
	submitted int64
	processed int64
	failed    int64
	dropped   int64

	// Metrics configuration
	metricsRegistry metric.MetricsRegistrar
	metricsPrefix   string

	logger *slog.Logger
}

// Metrics holds Prometheus metrics for worker pool monitoring
type Metrics struct {
	queueDepth     prometheus.Gauge
	utilization    prometheus.Gauge
	submitted      prometheus.Counter
	processed      prometheus.Counter
	failed         prometheus.Counter
	dropped        prometheus.Counter
	processingTime *prometheus.HistogramVec
}

// Option represents a configuration option for the worker pool
type Option[T any] func(*Pool[T])

// WithMetricsRegistry registers pool metrics named lore_worker_<prefix>_*.
// A pool takes over the metrics of an earlier pool with the same prefix.
// If any metric fails to register, the ones already registered are removed
// and the pool runs without metrics.
func WithMetricsRegistry[T any](registry metric.MetricsRegistrar, prefix string) Option[T] {
	return func(p *Pool[T]) {
		p.metricsRegistry = registry
		p.metricsPrefix = prefix
	}
}

// WithLogger sets the logger used for metric registration failures.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(p *Pool[T]) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPool creates a new generic worker pool with optional configuration
func NewPool[T any](workers, queueSize int, processor func(context.Context, T) error, opts ...Option[T]) *Pool[T] {
	if workers <= 0 {
		workers = 10
	}
	if queueSize <= 0 {
		queueSize = 1000
	}
	if processor == nil {
		panic(ErrNilProcessor)
	}

	pool := &Pool[T]{
		workers:   workers,
		queueSize: queueSize,
		processor: processor,
		workChan:  make(chan T, queueSize),
		done:      make(chan struct{}),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(pool)
	}

	if pool.metricsRegistry != nil && pool.metricsPrefix != "" {
		metrics, err := pool.initializeMetrics()
		if err != nil {
			pool.logger.Warn("worker pool metrics disabled",
				"prefix", pool.metricsPrefix,
				"error", err)
		}
		pool.metrics = metrics
	}

	return pool
}

func (p *Pool[T]) initializeMetrics() (*Metrics, error) {
	prefix := p.metricsPrefix
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace: metric.Namespace,
			Subsystem: "worker",
			Name:      prefix + "_" + name,
			Help:      help,
		}
	}

	m := &Metrics{
		queueDepth:  prometheus.NewGauge(prometheus.GaugeOpts(opts("queue_depth", "Current worker pool queue depth"))),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts(opts("utilization", "Worker pool queue utilization (0-1)"))),
		submitted:   prometheus.NewCounter(prometheus.CounterOpts(opts("submitted_total", "Total work items submitted"))),
		processed:   prometheus.NewCounter(prometheus.CounterOpts(opts("processed_total", "Total work items processed"))),
		failed:      prometheus.NewCounter(prometheus.CounterOpts(opts("failed_total", "Total work items that failed processing"))),
		dropped:     prometheus.NewCounter(prometheus.CounterOpts(opts("dropped_total", "Total work items dropped due to full queue"))),
		processingTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metric.Namespace,
			Subsystem: "worker",
			Name:      prefix + "_processing_duration_seconds",
			Help:      "Time spent processing work items",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"status"}),
	}

	const serviceName = "worker_pool"
	r := p.metricsRegistry
	registrations := []struct {
		name     string
		register func(name string) error
	}{
		{"queue_depth", func(name string) error {
			return r.RegisterGauge(serviceName, name, m.queueDepth)
		}},
		{"utilization", func(name string) error {
			return r.RegisterGauge(serviceName, name, m.utilization)
		}},
		{"submitted_total", func(name string) error {
			return r.RegisterCounter(serviceName, name, m.submitted)
		}},
		{"processed_total", func(name string) error {
			return r.RegisterCounter(serviceName, name, m.processed)
		}},
		{"failed_total", func(name string) error {
			return r.RegisterCounter(serviceName, name, m.failed)
		}},
		{"dropped_total", func(name string) error {
			return r.RegisterCounter(serviceName, name, m.dropped)
		}},
		{"processing_duration_seconds", func(name string) error {
			return r.RegisterHistogramVec(serviceName, name, m.processingTime)
		}},
	}

	registered := make([]string, 0, len(registrations))
	for _, reg := range registrations {
		name := prefix + "_" + reg.name
		r.Unregister(serviceName, name)
		if err := reg.register(name); err != nil {
			for _, done := range registered {
				r.Unregister(serviceName, done)
			}
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
		registered = append(registered, name)
	}
	return m, nil
}

// Submit submits work to the pool. Returns ErrQueueFull if the queue is full.
func (p *Pool[T]) Submit(work T) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if !p.started {
		return ErrPoolNotStarted
	}
	if p.closed {
		return ErrPoolStopped
	}

	select {
	case p.workChan <- work:
		atomic.AddInt64(&p.submitted, 1)
		if p.metrics != nil {
			p.metrics.submitted.Inc()
			p.metrics.queueDepth.Set(float64(len(p.workChan)))
		}
		return nil
	default:
		atomic.AddInt64(&p.dropped, 1)
		if p.metrics != nil {
			p.metrics.dropped.Inc()
		}
		return ErrQueueFull
	}
}

// Start starts the worker pool. Workers exit when ctx is cancelled, leaving
// queued work unprocessed.
func (p *Pool[T]) Start(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.started {
		return ErrPoolAlreadyStarted
	}

	p.wg = &sync.WaitGroup{}

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	if p.metrics != nil {
		p.wg.Add(1)
		go p.metricsUpdater(ctx)
	}

	p.started = true
	return nil
}

// Stop closes the queue and waits until every queued item is processed or
// ctx is done. Stop may be called again after it was interrupted.
func (p *Pool[T]) Stop(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if !p.started || p.stopped {
		return nil
	}

	if !p.closed {
		close(p.workChan)
		close(p.done)
		p.closed = true
	}

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		p.stopped = true
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrStopInterrupted, ctx.Err())
	}
}

// Stats returns current pool statistics
func (p *Pool[T]) Stats() PoolStats {
	return PoolStats{
		Workers:    p.workers,
		QueueSize:  p.queueSize,
		QueueDepth: len(p.workChan),
		Submitted:  atomic.LoadInt64(&p.submitted),
		Processed:  atomic.LoadInt64(&p.processed),
		Failed:     atomic.LoadInt64(&p.failed),
		Dropped:    atomic.LoadInt64(&p.dropped),
	}
}

// PoolStats represents worker pool statistics
type PoolStats struct {
	Workers    int   `json:"workers"`
	QueueSize  int   `json:"queue_size"`
	QueueDepth int   `json:"queue_depth"`
	Submitted  int64 `json:"submitted"`
	Processed  int64 `json:"processed"`
	Failed     int64 `json:"failed"`
	Dropped    int64 `json:"dropped"`
}

func (p *Pool[T]) worker(ctx context.Context, _ int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case work, ok := <-p.workChan:
			if !ok {
				return
			}

			start := time.Now()
			err := p.processor(ctx, work)
			duration := time.Since(start)

			atomic.AddInt64(&p.processed, 1)
			if err != nil {
				atomic.AddInt64(&p.failed, 1)
			}

			if p.metrics != nil {
				p.metrics.processed.Inc()
				status := "success"
				if err != nil {
					p.metrics.failed.Inc()
					status = "error"
				}
				p.metrics.processingTime.WithLabelValues(status).Observe(duration.Seconds())
			}
		}
	}
}

// metricsUpdater refreshes queue depth and utilization until the pool stops
func (p *Pool[T]) metricsUpdater(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	update := func() {
		queueDepth := float64(len(p.workChan))
		p.metrics.queueDepth.Set(queueDepth)
		p.metrics.utilization.Set(queueDepth / float64(p.queueSize))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			update()
			return
		case <-ticker.C:
			update()
		}
	}
}
