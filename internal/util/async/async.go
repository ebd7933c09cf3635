package async

import (
	"context"
	"errors"
	"fmt"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes all tasks concurrently and waits for every one of
// them to return. Errors are wrapped with the task name and joined, so the
// caller sees each failure and not only the first.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "namespace", Func: applyNamespace},
//	    {Name: "cluster-admin-binding", Func: applyAdminBinding},
//	}
//	if err := RunParallel(ctx, tasks); err != nil {
//	    return err
//	}
func RunParallel(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	// Single task: skip the goroutine and channel.
	if len(tasks) == 1 {
		if err := tasks[0].Func(ctx); err != nil {
			return fmt.Errorf("%s: %w", tasks[0].Name, err)
		}
		return nil
	}

	type result struct {
		name string
		err  error
	}

	results := make(chan result, len(tasks))
	for _, task := range tasks {
		go func() {
			results <- result{name: task.Name, err: task.Func(ctx)}
		}()
	}

	var errs []error
	for range len(tasks) {
		res := <-results
		if res.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.name, res.err))
		}
	}

	return errors.Join(errs...)
}
