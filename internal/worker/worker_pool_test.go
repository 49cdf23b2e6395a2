package worker

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestPoolRunExecutesAllTasks(t *testing.T) {
	pool := NewPool(4)
	var count atomic.Int32
	tasks := make([]func() error, 20)
	for i := range tasks {
		tasks[i] = func() error {
			count.Add(1)
			return nil
		}
	}
	if err := pool.Run(tasks); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := count.Load(); got != 20 {
		t.Fatalf("executed %d tasks, want 20", got)
	}
}

func TestPoolRunReturnsAnErrorAndStillRunsEverything(t *testing.T) {
	pool := NewPool(2)
	var count atomic.Int32
	boom := errors.New("boom")
	tasks := []func() error{
		func() error { count.Add(1); return nil },
		func() error { count.Add(1); return boom },
		func() error { count.Add(1); return nil },
	}
	err := pool.Run(tasks)
	if err == nil {
		t.Fatal("expected Run to return the task error")
	}
	if got := count.Load(); got != 3 {
		t.Fatalf("executed %d tasks, want all 3 to run despite the error", got)
	}
}

func TestPoolRunEmptyTaskList(t *testing.T) {
	pool := NewPool(2)
	if err := pool.Run(nil); err != nil {
		t.Fatalf("Run(nil) = %v, want nil", err)
	}
}

func TestNewPoolClampsWorkersToTaskCount(t *testing.T) {
	pool := NewPool(100)
	tasks := []func() error{
		func() error { return nil },
	}
	if err := pool.Run(tasks); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestNewPoolDefaultsToNumCPU(t *testing.T) {
	pool := NewPool(0)
	if pool.size <= 0 {
		t.Fatalf("NewPool(0).size = %d, want > 0", pool.size)
	}
}
