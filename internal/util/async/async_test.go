package async

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunParallel_Success(t *testing.T) {
	var count atomic.Int32

	tasks := []Task{
		{Name: "namespace", Func: func(_ context.Context) error {
			count.Add(1)
			return nil
		}},
		{Name: "cluster-admin-binding", Func: func(_ context.Context) error {
			count.Add(1)
			return nil
		}},
		{Name: "runner/role", Func: func(_ context.Context) error {
			count.Add(1)
			return nil
		}},
	}

	if err := RunParallel(context.Background(), tasks); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}

	if count.Load() != 3 {
		t.Errorf("expected 3 tasks to run, got %d", count.Load())
	}
}

func TestRunParallel_EmptyTasks(t *testing.T) {
	if err := RunParallel(context.Background(), nil); err != nil {
		t.Errorf("expected no error for nil tasks, got: %v", err)
	}

	if err := RunParallel(context.Background(), []Task{}); err != nil {
		t.Errorf("expected no error for empty slice, got: %v", err)
	}
}

func TestRunParallel_SingleTaskError(t *testing.T) {
	expectedErr := errors.New("boom")

	err := RunParallel(context.Background(), []Task{
		{Name: "only", Func: func(_ context.Context) error { return expectedErr }},
	})
	if !errors.Is(err, expectedErr) {
		t.Fatalf("expected error to wrap %v, got: %v", expectedErr, err)
	}
	if !strings.Contains(err.Error(), "only") {
		t.Errorf("error message should contain task name, got: %s", err)
	}
}

func TestRunParallel_MultipleErrors(t *testing.T) {
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")

	tasks := []Task{
		{Name: "fail1", Func: func(_ context.Context) error { return err1 }},
		{Name: "fail2", Func: func(_ context.Context) error { return err2 }},
		{Name: "ok", Func: func(_ context.Context) error { return nil }},
	}

	err := RunParallel(context.Background(), tasks)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, err1) {
		t.Errorf("expected error to contain err1, got: %v", err)
	}
	if !errors.Is(err, err2) {
		t.Errorf("expected error to contain err2, got: %v", err)
	}
}

func TestRunParallel_WaitsForAllTasks(t *testing.T) {
	var completed atomic.Int32

	tasks := []Task{
		{Name: "fast-fail", Func: func(_ context.Context) error {
			return errors.New("fast fail")
		}},
		{Name: "slow-1", Func: func(_ context.Context) error {
			time.Sleep(30 * time.Millisecond)
			completed.Add(1)
			return nil
		}},
		{Name: "slow-2", Func: func(_ context.Context) error {
			time.Sleep(30 * time.Millisecond)
			completed.Add(1)
			return nil
		}},
	}

	_ = RunParallel(context.Background(), tasks)

	if completed.Load() != 2 {
		t.Errorf("expected 2 slow tasks to complete before return, got %d", completed.Load())
	}
}

func TestRunParallel_Concurrent(t *testing.T) {
	var maxConcurrent atomic.Int32
	var current atomic.Int32

	tasks := make([]Task, 4)
	for i := range tasks {
		tasks[i] = Task{
			Name: "task",
			Func: func(_ context.Context) error {
				c := current.Add(1)
				for {
					old := maxConcurrent.Load()
					if c <= old || maxConcurrent.CompareAndSwap(old, c) {
						break
					}
				}
				time.Sleep(50 * time.Millisecond)
				current.Add(-1)
				return nil
			},
		}
	}

	if err := RunParallel(context.Background(), tasks); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if maxConcurrent.Load() != 4 {
		t.Errorf("expected 4 concurrent tasks, got %d", maxConcurrent.Load())
	}
}
