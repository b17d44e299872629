package aiusage

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ai-router/internal/domain/airouter"
	"ai-router/internal/infrastructure/logger"
)

const (
	DefaultQueueSize    = 256
	DefaultWriteTimeout = 5 * time.Second
)

// Recorder logs usage off the request path. Record only enqueues; a single
// worker drains the queue into the repository. Write failures, queue
// overflow and panics in the repository are logged as warnings and dropped.
type Recorder struct {
	repo         Repository
	queue        chan *UsageRecord
	writeTimeout time.Duration
	now          func() time.Time

	mu      sync.RWMutex
	closed  bool
	done    chan struct{}
	dropped atomic.Int64
	failed  atomic.Int64
}

// NewRecorder starts the background worker.
func NewRecorder(repo Repository, queueSize int, writeTimeout time.Duration) *Recorder {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	r := &Recorder{
		repo:         repo,
		queue:        make(chan *UsageRecord, queueSize),
		writeTimeout: writeTimeout,
		now:          time.Now,
		done:         make(chan struct{}),
	}
	go r.run()
	return r
}

// Record implements airouter.UsageRecorder. It never blocks.
func (r *Recorder) Record(event airouter.UsageEvent) {
	if event.Model == nil {
		return
	}
	record := NewUsageRecord(event, r.now())

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.dropped.Add(1)
		return
	}
	select {
	case r.queue <- record:
	default:
		r.dropped.Add(1)
		log := logger.GetLogger()
		log.Warn().
			Str("model", record.ModelID).
			Str("task_type", record.TaskType).
			Msg("usage queue full, dropping usage record")
	}
}

// Dropped is the number of records never handed to the repository.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Failed is the number of records the repository refused.
func (r *Recorder) Failed() int64 {
	return r.failed.Load()
}

// Close stops accepting records and waits for the queue to drain or ctx to end.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	for record := range r.queue {
		r.write(record)
	}
}

func (r *Recorder) write(record *UsageRecord) {
	log := logger.GetLogger()
	defer func() {
		if rec := recover(); rec != nil {
			r.failed.Add(1)
			log.Warn().Interface("panic", rec).Str("model", record.ModelID).Msg("usage repository panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()
	if err := r.repo.Create(ctx, record); err != nil {
		r.failed.Add(1)
		log.Warn().
			Err(err).
			Str("model", record.ModelID).
			Str("task_type", record.TaskType).
			Msg("failed to log AI usage")
	}
}
