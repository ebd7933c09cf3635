package gke

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/container/apiv1/containerpb"
	"google.golang.org/grpc/status"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/gkerunner/internal/util/naming"
	"github.com/imamik/gkerunner/internal/util/retry"
)

var errPending = errors.New("not ready yet")

// EnsureOperation encapsulates get-or-create logic for a GKE resource.
//
// Get must return a NotFound status error when the resource is missing.
// Create starts the long-running operation that creates it; it is retried
// while the cluster is busy with another operation. Ready, when set, is
// polled through Get until it reports true. Validate, when set, rejects an
// existing resource in a state that cannot be used.
type EnsureOperation[T any] struct {
	Name         string
	ResourceType string
	Zone         string

	Get      func(ctx context.Context) (T, error)
	Create   func(ctx context.Context) (*containerpb.Operation, error)
	Ready    func(resource T) bool
	Validate func(resource T) error
}

// Execute returns the existing resource, or creates it and waits for the
// operation. The created flag reports which path was taken.
func (op *EnsureOperation[T]) Execute(ctx context.Context, c *Client) (resource T, created bool, err error) {
	var zero T
	logger := log.FromContext(ctx).WithValues(op.ResourceType, op.Name)

	resource, err = op.Get(ctx)
	switch {
	case err == nil:
		logger.V(1).Info("found existing resource")
	case IsNotFound(err):
		logger.Info("creating")
		if err := op.create(ctx, c); err != nil {
			return zero, false, err
		}
		created = true
		if resource, err = op.Get(ctx); err != nil {
			return zero, false, fmt.Errorf("failed to get %s %s after creation: %w", op.ResourceType, op.Name, err)
		}
	default:
		return zero, false, fmt.Errorf("failed to get %s %s: %w", op.ResourceType, op.Name, err)
	}

	if op.Validate != nil {
		if err := op.Validate(resource); err != nil {
			return zero, false, err
		}
	}

	if op.Ready != nil && !op.Ready(resource) {
		resource, err = op.waitReady(ctx, c)
		if err != nil {
			return zero, false, err
		}
	}

	return resource, created, nil
}

func (op *EnsureOperation[T]) create(ctx context.Context, c *Client) error {
	var started *containerpb.Operation
	err := retry.Do(ctx, func(ctx context.Context) error {
		res, err := op.Create(ctx)
		switch {
		case err == nil:
			started = res
			return nil
		case IsAlreadyExists(err):
			// Created concurrently or by an earlier interrupted run.
			return nil
		case isClusterBusy(err):
			return err
		default:
			return retry.Permanent(err)
		}
	}, retry.WithMaxAttempts(0), retry.WithInitialDelay(c.pollInterval), retry.WithMaxDelay(4*c.pollInterval))
	if err != nil {
		return fmt.Errorf("failed to create %s %s: %w", op.ResourceType, op.Name, err)
	}

	if started == nil {
		return nil
	}
	if err := c.WaitForOperation(ctx, op.Zone, started); err != nil {
		return fmt.Errorf("failed to wait for %s %s creation: %w", op.ResourceType, op.Name, err)
	}
	return nil
}

func (op *EnsureOperation[T]) waitReady(ctx context.Context, c *Client) (T, error) {
	var resource T
	err := retry.Do(ctx, func(ctx context.Context) error {
		res, err := op.Get(ctx)
		if err != nil {
			if isClusterBusy(err) {
				return err
			}
			return retry.Permanent(err)
		}
		if op.Validate != nil {
			if err := op.Validate(res); err != nil {
				return retry.Permanent(err)
			}
		}
		if !op.Ready(res) {
			return errPending
		}
		resource = res
		return nil
	}, retry.WithMaxAttempts(0), retry.WithConstantDelay(c.pollInterval))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed waiting for %s %s to become ready: %w", op.ResourceType, op.Name, err)
	}
	return resource, nil
}

// DeleteOperation encapsulates idempotent deletion of a GKE resource.
// A missing resource is not an error.
type DeleteOperation struct {
	Name         string
	ResourceType string
	Zone         string

	Exists func(ctx context.Context) error
	Delete func(ctx context.Context) (*containerpb.Operation, error)
}

// Execute deletes the resource and waits for the operation. It reports
// whether anything was deleted.
func (op *DeleteOperation) Execute(ctx context.Context, c *Client) (bool, error) {
	if err := op.Exists(ctx); err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s %s: %w", op.ResourceType, op.Name, err)
	}

	log.FromContext(ctx).Info("deleting", op.ResourceType, op.Name)

	var started *containerpb.Operation
	err := retry.Do(ctx, func(ctx context.Context) error {
		res, err := op.Delete(ctx)
		switch {
		case err == nil:
			started = res
			return nil
		case IsNotFound(err):
			return nil
		case isClusterBusy(err):
			return err
		default:
			return retry.Permanent(err)
		}
	}, retry.WithMaxAttempts(0), retry.WithInitialDelay(c.pollInterval), retry.WithMaxDelay(4*c.pollInterval))
	if err != nil {
		return false, fmt.Errorf("failed to delete %s %s: %w", op.ResourceType, op.Name, err)
	}

	if started != nil {
		if err := c.WaitForOperation(ctx, op.Zone, started); err != nil {
			return false, fmt.Errorf("failed to wait for %s %s deletion: %w", op.ResourceType, op.Name, err)
		}
	}
	return true, nil
}

// WaitForOperation polls a long-running operation until it is done. An
// operation that finished with an error is returned as a status error.
// The wait is bounded only by ctx.
func (c *Client) WaitForOperation(ctx context.Context, zone string, op *containerpb.Operation) error {
	if op == nil {
		return nil
	}

	name := naming.Operation(c.project, zone, op.GetName())
	logger := log.FromContext(ctx).WithValues("operation", op.GetName(), "type", op.GetOperationType().String())
	start := time.Now()

	current := op
	err := retry.Do(ctx, func(ctx context.Context) error {
		if current.GetStatus() == containerpb.Operation_DONE {
			return nil
		}

		res, err := c.api.GetOperation(ctx, &containerpb.GetOperationRequest{Name: name})
		if err != nil {
			if isClusterBusy(err) {
				return err
			}
			return retry.Permanent(fmt.Errorf("failed to get operation: %w", err))
		}
		current = res
		if current.GetStatus() != containerpb.Operation_DONE {
			logger.V(1).Info("operation in progress", "status", current.GetStatus().String())
			return errPending
		}
		return nil
	}, retry.WithMaxAttempts(0), retry.WithConstantDelay(c.pollInterval))
	if err != nil {
		return err
	}

	if opErr := current.GetError(); opErr != nil && opErr.GetCode() != 0 {
		return fmt.Errorf("operation %s failed: %w", op.GetName(), status.ErrorProto(opErr))
	}

	logger.V(1).Info("operation done", "elapsed", time.Since(start).Round(time.Second).String())
	return nil
}
