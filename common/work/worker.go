package work

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidQueueSize   = errors.New("invalid queue size")
	ErrPoolStopped        = errors.New("worker pool has been stopped")
)

// Job is a unit of work identified by ID
type Job struct {
	ID  string
	Run func(ctx context.Context) error
}

// Result reports the outcome of one job
type Result struct {
	JobID    string
	Err      error
	Duration time.Duration
}

// Pool runs jobs across a fixed number of workers. It exists so the
// coordinator can crawl independent domains in parallel; each job is one
// domain's full crawl.
type Pool struct {
	workers int
	jobs    chan Job
	results chan Result
	quit    chan struct{}
	wg      sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once

	jobsQueued int64
	jobsDone   int64

	mu      sync.RWMutex
	started bool
	stopped bool
}

// NewPool creates a pool with the given worker count and job queue size
func NewPool(workers, queueSize int) (*Pool, error) {
	if workers <= 0 {
		return nil, ErrInvalidWorkerCount
	}
	if queueSize < 0 {
		return nil, ErrInvalidQueueSize
	}
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, queueSize),
		results: make(chan Result, queueSize+workers),
		quit:    make(chan struct{}),
	}, nil
}

// Start launches the workers
func (p *Pool) Start(ctx context.Context, poolID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || p.stopped {
		return
	}

	p.startOnce.Do(func() {
		p.started = true
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.worker(ctx, fmt.Sprintf("%s-%d", poolID, i))
		}
		log.Info().
			Str("workerPoolID", poolID).
			Int("numWorkers", p.workers).
			Msg("Worker pool started")
	})
}

// Submit queues a job for execution
func (p *Pool) Submit(ctx context.Context, job Job) error {
	p.mu.RLock()
	stopped := p.stopped
	p.mu.RUnlock()
	if stopped {
		return ErrPoolStopped
	}

	select {
	case <-p.quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		atomic.AddInt64(&p.jobsQueued, 1)
		return nil
	}
}

// Results returns the channel job outcomes are delivered on
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Stop drains the pool and waits for in-flight jobs to finish
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	p.stopOnce.Do(func() {
		close(p.quit)
		close(p.jobs)
		p.wg.Wait()
	})
}

// Completed returns how many jobs have finished
func (p *Pool) Completed() int64 {
	return atomic.LoadInt64(&p.jobsDone)
}

func (p *Pool) worker(ctx context.Context, workerID string) {
	defer p.wg.Done()

	for job := range p.jobs {
		select {
		case <-ctx.Done():
			p.deliver(Result{JobID: job.ID, Err: ctx.Err()})
			continue
		default:
		}

		start := time.Now()
		err := p.runJob(ctx, job, workerID)
		atomic.AddInt64(&p.jobsDone, 1)
		p.deliver(Result{JobID: job.ID, Err: err, Duration: time.Since(start)})
	}
}

func (p *Pool) runJob(ctx context.Context, job Job, workerID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", job.ID, r)
			log.Error().Str("worker", workerID).Str("jobID", job.ID).Interface("panic", r).Msg("Job panicked")
		}
	}()
	return job.Run(ctx)
}

func (p *Pool) deliver(res Result) {
	select {
	case p.results <- res:
	default:
		log.Warn().Str("jobID", res.JobID).Msg("Result channel full, dropping result")
	}
}
