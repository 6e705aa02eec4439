package work

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPoolValidation(t *testing.T) {
	if _, err := NewPool(0, 10); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Errorf("expected ErrInvalidWorkerCount, got %v", err)
	}
	if _, err := NewPool(-1, 10); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Errorf("expected ErrInvalidWorkerCount, got %v", err)
	}
	if _, err := NewPool(2, -1); !errors.Is(err, ErrInvalidQueueSize) {
		t.Errorf("expected ErrInvalidQueueSize, got %v", err)
	}
	if _, err := NewPool(2, 0); err != nil {
		t.Errorf("expected an unbuffered queue to be valid, got %v", err)
	}
}

func TestPoolRunsAllJobs(t *testing.T) {
	pool, err := NewPool(3, 10)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	pool.Start(ctx, "test")
	defer pool.Stop()

	var ran int64
	const jobs = 8
	for i := 0; i < jobs; i++ {
		err := pool.Submit(ctx, Job{
			ID: fmt.Sprintf("job-%d", i),
			Run: func(context.Context) error {
				atomic.AddInt64(&ran, 1)
				return nil
			},
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	for i := 0; i < jobs; i++ {
		select {
		case res := <-pool.Results():
			if res.Err != nil {
				t.Errorf("job %s failed: %v", res.JobID, res.Err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for results")
		}
	}

	if got := atomic.LoadInt64(&ran); got != jobs {
		t.Errorf("expected %d jobs to run, got %d", jobs, got)
	}
	if got := pool.Completed(); got != jobs {
		t.Errorf("expected Completed()=%d, got %d", jobs, got)
	}
}

func TestPoolReportsJobErrors(t *testing.T) {
	pool, err := NewPool(1, 2)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	pool.Start(ctx, "test")
	defer pool.Stop()

	wantErr := errors.New("job blew up")
	if err := pool.Submit(ctx, Job{ID: "bad", Run: func(context.Context) error { return wantErr }}); err != nil {
		t.Fatal(err)
	}

	select {
	case res := <-pool.Results():
		if res.JobID != "bad" {
			t.Errorf("unexpected job ID %s", res.JobID)
		}
		if !errors.Is(res.Err, wantErr) {
			t.Errorf("expected the job error, got %v", res.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}
}

func TestPoolRecoversFromPanic(t *testing.T) {
	pool, err := NewPool(1, 2)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	pool.Start(ctx, "test")
	defer pool.Stop()

	if err := pool.Submit(ctx, Job{ID: "panicky", Run: func(context.Context) error { panic("boom") }}); err != nil {
		t.Fatal(err)
	}

	select {
	case res := <-pool.Results():
		if res.Err == nil {
			t.Error("expected a panicking job to report an error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}

	// The worker must survive the panic and keep processing.
	if err := pool.Submit(ctx, Job{ID: "after", Run: func(context.Context) error { return nil }}); err != nil {
		t.Fatal(err)
	}
	select {
	case res := <-pool.Results():
		if res.Err != nil {
			t.Errorf("expected the follow-up job to succeed, got %v", res.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for follow-up result")
	}
}

func TestPoolSubmitAfterStop(t *testing.T) {
	pool, err := NewPool(1, 2)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	pool.Start(ctx, "test")
	pool.Stop()

	err = pool.Submit(ctx, Job{ID: "late", Run: func(context.Context) error { return nil }})
	if !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped, got %v", err)
	}
}

func TestPoolStopIdempotent(t *testing.T) {
	pool, err := NewPool(2, 2)
	if err != nil {
		t.Fatal(err)
	}

	pool.Start(context.Background(), "test")
	pool.Stop()
	pool.Stop() // must not panic
}
